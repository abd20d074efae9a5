package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurykabanov/logrotator/pkg/domain"
	"github.com/yurykabanov/logrotator/pkg/util"
)

func openJournal(t *testing.T) *sqlx.DB {
	db, err := sqlx.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	// every connection of an in-memory database is a separate database
	db.SetMaxOpenConns(1)
	db.MapperFunc(util.CamelToSnakeCase)

	schema, err := os.ReadFile("../../migrations/1_create_runs.up.sql")
	require.NoError(t, err)

	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return db
}

func TestRunRepository_CreateUpdateFind(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepository(openJournal(t))

	createdAt := time.Date(2026, 3, 1, 6, 25, 0, 0, time.UTC)

	run, err := repo.Create(ctx, domain.Run{
		RunId:      "8b0f9a52-33e4-4d6b-a3b4-4ec9c1c0e7a1",
		Action:     "cron",
		ExecStatus: domain.ExecStatusStarted,
		CreatedAt:  createdAt,
	})
	require.NoError(t, err)
	assert.NotZero(t, run.Id)

	finishedAt := createdAt.Add(2 * time.Second)
	run.ExecStatus = domain.ExecStatusSuccess
	run.FilesTotal = 12
	run.FilesModified = 3
	run.FinishedAt = &finishedAt

	require.NoError(t, repo.Update(ctx, run))

	runs, err := repo.FindRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	assert.Equal(t, run.Id, runs[0].Id)
	assert.Equal(t, "cron", runs[0].Action)
	assert.Equal(t, domain.ExecStatusSuccess, runs[0].ExecStatus)
	assert.Equal(t, 12, runs[0].FilesTotal)
	assert.Equal(t, 3, runs[0].FilesModified)
	assert.Equal(t, createdAt.Unix(), runs[0].CreatedAt.Unix())
	require.NotNil(t, runs[0].FinishedAt)
	assert.Equal(t, finishedAt.Unix(), runs[0].FinishedAt.Unix())
}

func TestRunRepository_FindRecent_NewestFirstAndLimited(t *testing.T) {
	ctx := context.Background()
	repo := NewRunRepository(openJournal(t))

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, action := range []string{"install", "cron", "update-cronjob"} {
		_, err := repo.Create(ctx, domain.Run{
			RunId:      action,
			Action:     action,
			ExecStatus: domain.ExecStatusStarted,
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	runs, err := repo.FindRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "update-cronjob", runs[0].Action)
	assert.Equal(t, "cron", runs[1].Action)
	assert.Nil(t, runs[0].FinishedAt)
}

func TestNopRunRepository(t *testing.T) {
	ctx := context.Background()
	var repo NopRunRepository

	run, err := repo.Create(ctx, domain.Run{Action: "cron"})
	assert.NoError(t, err)
	assert.Zero(t, run.Id)

	assert.NoError(t, repo.Update(ctx, run))

	runs, err := repo.FindRecent(ctx, 10)
	assert.NoError(t, err)
	assert.Empty(t, runs)
}

package storage

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/yurykabanov/logrotator/pkg/domain"
)

const (
	runInsertQuery = `
		INSERT INTO runs (
			run_id, action,
			exec_status, files_total, files_modified, message,
			created_at, finished_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	runUpdateQuery = `
		UPDATE runs SET
			run_id = ?, action = ?,
			exec_status = ?, files_total = ?, files_modified = ?, message = ?,
			created_at = ?, finished_at = ?
		WHERE id = ?
	`

	runSelectRecent = `
		SELECT
			id,
			run_id, action,
			exec_status, files_total, files_modified, message,
			created_at, finished_at
		FROM runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
)

type RunRepository struct {
	db *sqlx.DB
}

func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

func (r *RunRepository) Create(ctx context.Context, run domain.Run) (domain.Run, error) {
	res, err := r.db.ExecContext(
		ctx, runInsertQuery,
		run.RunId, run.Action,
		run.ExecStatus, run.FilesTotal, run.FilesModified, run.Message,
		run.CreatedAt, run.FinishedAt,
	)
	if err != nil {
		return run, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return run, err
	}

	run.Id = id

	return run, nil
}

func (r *RunRepository) Update(ctx context.Context, run domain.Run) error {
	_, err := r.db.ExecContext(
		ctx, runUpdateQuery,
		run.RunId, run.Action,
		run.ExecStatus, run.FilesTotal, run.FilesModified, run.Message,
		run.CreatedAt, run.FinishedAt,
		run.Id,
	)

	return err
}

func (r *RunRepository) FindRecent(ctx context.Context, limit int) ([]domain.Run, error) {
	var runs []domain.Run

	err := r.db.SelectContext(ctx, &runs, runSelectRecent, limit)
	if err != nil {
		return nil, err
	}

	return runs, nil
}

// NopRunRepository is used when the journal is disabled. Runs keep a zero
// Id, so they are never updated.
type NopRunRepository struct{}

func (NopRunRepository) Create(_ context.Context, run domain.Run) (domain.Run, error) {
	return run, nil
}

func (NopRunRepository) Update(context.Context, domain.Run) error {
	return nil
}

func (NopRunRepository) FindRecent(context.Context, int) ([]domain.Run, error) {
	return nil, nil
}

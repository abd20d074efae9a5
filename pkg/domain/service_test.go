package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yurykabanov/logrotator/pkg/appcontext"
)

// region runRepositoryMock
type runRepositoryMock struct {
	mock.Mock
}

func (m *runRepositoryMock) Create(ctx context.Context, run Run) (Run, error) {
	args := m.Called(ctx, run)
	return args.Get(0).(Run), args.Error(1)
}

func (m *runRepositoryMock) Update(ctx context.Context, run Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *runRepositoryMock) FindRecent(ctx context.Context, limit int) ([]Run, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]Run), args.Error(1)
}

// endregion

// region runObserverMock
type runObserverMock struct {
	mock.Mock
}

func (m *runObserverMock) ObserveRun(action string, status string, filesModified int, duration time.Duration) {
	m.Called(action, status, filesModified, duration)
}

// endregion

func fixedClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

// region Test: Begin
func TestRunService_Begin(t *testing.T) {
	repo := &runRepositoryMock{}

	createdAt, _ := time.Parse(time.RFC3339, "2019-01-01T02:03:04Z")

	repo.On("Create", mock.Anything, mock.AnythingOfType("Run")).
		Return(Run{Id: 12, Action: "cron", ExecStatus: ExecStatusStarted, CreatedAt: createdAt}, nil)

	svc := NewRunService(discardLogger(), repo, nil)
	svc.now = fixedClock(createdAt)

	ctx, run := svc.Begin(context.Background(), "cron")

	assert.Equal(t, int64(12), run.Id)
	assert.Equal(t, ExecStatusStarted, run.ExecStatus)
	assert.NotEmpty(t, appcontext.RunIdFromContext(ctx))

	created := repo.Calls[0].Arguments.Get(1).(Run)
	assert.Equal(t, "cron", created.Action)
	assert.Equal(t, createdAt, created.CreatedAt)
	assert.Equal(t, appcontext.RunIdFromContext(ctx), created.RunId)
}

func TestRunService_Begin_RepositoryFailure(t *testing.T) {
	repo := &runRepositoryMock{}
	repo.On("Create", mock.Anything, mock.Anything).Return(Run{}, errors.New("disk full"))

	svc := NewRunService(discardLogger(), repo, nil)

	_, run := svc.Begin(context.Background(), "cron")

	assert.Equal(t, int64(0), run.Id)
	assert.Equal(t, "cron", run.Action)
	assert.NotEmpty(t, run.RunId)
}

// endregion

// region Test: Finish
func TestRunService_Finish_Success(t *testing.T) {
	repo := &runRepositoryMock{}
	observer := &runObserverMock{}

	createdAt, _ := time.Parse(time.RFC3339, "2019-01-01T02:03:04Z")
	finishedAt := createdAt.Add(3 * time.Second)

	run := Run{Id: 5, RunId: "run", Action: "cron", ExecStatus: ExecStatusStarted, CreatedAt: createdAt}

	repo.On("Update", mock.Anything, Run{
		Id:            5,
		RunId:         "run",
		Action:        "cron",
		ExecStatus:    ExecStatusSuccess,
		FilesTotal:    4,
		FilesModified: 2,
		CreatedAt:     createdAt,
		FinishedAt:    &finishedAt,
	}).Return(nil)
	observer.On("ObserveRun", "cron", "success", 2, 3*time.Second).Return()

	svc := NewRunService(discardLogger(), repo, observer)
	svc.now = fixedClock(finishedAt)

	result := svc.Finish(context.Background(), run, ModifyReport{Total: 4, Modified: []string{"a", "b"}}, nil)

	assert.Equal(t, ExecStatusSuccess, result.ExecStatus)
	repo.AssertExpectations(t)
	observer.AssertExpectations(t)
}

func TestRunService_Finish_Failure(t *testing.T) {
	repo := &runRepositoryMock{}
	repo.On("Update", mock.Anything, mock.AnythingOfType("Run")).Return(nil)

	svc := NewRunService(discardLogger(), repo, nil)

	result := svc.Finish(context.Background(), Run{Id: 5, CreatedAt: time.Now()}, ModifyReport{}, errors.New("permission denied"))

	assert.Equal(t, ExecStatusFailure, result.ExecStatus)
	assert.Equal(t, "permission denied", result.Message)
	assert.NotNil(t, result.FinishedAt)
}

func TestRunService_Finish_NotRecorded(t *testing.T) {
	repo := &runRepositoryMock{}

	svc := NewRunService(discardLogger(), repo, nil)

	result := svc.Finish(context.Background(), Run{CreatedAt: time.Now()}, ModifyReport{}, nil)

	assert.Equal(t, ExecStatusSuccess, result.ExecStatus)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// endregion

package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/logrotator/pkg/appcontext"
)

type RunRepository interface {
	Create(context.Context, Run) (Run, error)
	Update(context.Context, Run) error
	FindRecent(context.Context, int) ([]Run, error)
}

type RunObserver interface {
	ObserveRun(action string, status string, filesModified int, duration time.Duration)
}

// RunService journals reconcile runs. Journal failures are logged and never
// fail the run itself.
type RunService struct {
	logger logrus.FieldLogger

	repo     RunRepository
	observer RunObserver

	now func() time.Time
}

func NewRunService(logger logrus.FieldLogger, repo RunRepository, observer RunObserver) *RunService {
	return &RunService{
		logger:   logger,
		repo:     repo,
		observer: observer,
		now:      time.Now,
	}
}

// Begin records a new run and returns a context carrying its run id.
func (s *RunService) Begin(ctx context.Context, action string) (context.Context, Run) {
	run := Run{
		RunId:      uuid.New().String(),
		Action:     action,
		ExecStatus: ExecStatusStarted,
		CreatedAt:  s.now(),
	}

	ctx = appcontext.WithRunId(appcontext.WithAction(ctx, action), run.RunId)
	logger := appcontext.LoggerFromContext(s.logger, ctx)

	created, err := s.repo.Create(ctx, run)
	if err != nil {
		logger.WithError(err).Warn("Unable to record run")
		return ctx, run
	}

	logger.Debug("Run started")
	return ctx, created
}

// Finish stores the outcome of a run started with Begin.
func (s *RunService) Finish(ctx context.Context, run Run, report ModifyReport, runErr error) Run {
	logger := appcontext.LoggerFromContext(s.logger, ctx)

	finishedAt := s.now()
	run.FinishedAt = &finishedAt
	run.FilesTotal = report.Total
	run.FilesModified = len(report.Modified)

	if runErr != nil {
		run.ExecStatus = ExecStatusFailure
		run.Message = runErr.Error()
	} else {
		run.ExecStatus = ExecStatusSuccess
		run.Message = ""
	}

	if s.observer != nil {
		s.observer.ObserveRun(run.Action, run.ExecStatus.String(), run.FilesModified, finishedAt.Sub(run.CreatedAt))
	}

	if run.Id != 0 {
		err := s.repo.Update(ctx, run)
		if err != nil {
			logger.WithError(err).Warn("Unable to update run")
		}
	}

	logger.WithFields(logrus.Fields{
		"exec_status":    run.ExecStatus.String(),
		"files_total":    run.FilesTotal,
		"files_modified": run.FilesModified,
	}).Info("Run finished")

	return run
}

package domain

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/logrotator/pkg/appcontext"
)

// ReconcileManager is the core of serve mode. It re-applies the retention
// policy on a cron schedule and whenever the logrotate directory changes.
// Triggers are funneled through a single-slot queue into one worker, so
// reconcile passes never overlap.
type ReconcileManager struct {
	logger logrus.FieldLogger

	spec    string
	queue   chan string
	configs configManager
	runs    runJournal

	cron    cron
	watcher watcher
}

type configManager interface {
	ReadConfig() error
	ModifyConfigs(context.Context) (ModifyReport, error)
}

type runJournal interface {
	Begin(context.Context, string) (context.Context, Run)
	Finish(context.Context, Run, ModifyReport, error) Run
}

type cron interface {
	AddFunc(spec string, cmd func()) error
	Start()
	Stop()
}

type watcher interface {
	Watch(ctx context.Context, onChange func()) error
}

const (
	TriggerStartup = "serve:startup"
	TriggerCron    = "serve:cron"
	TriggerWatch   = "serve:watch"
)

func NewReconcileManager(
	logger logrus.FieldLogger,
	spec string,
	configs configManager,
	runs runJournal,
	cron cron,
	watcher watcher,
) *ReconcileManager {
	return &ReconcileManager{
		logger: logger,

		spec:    spec,
		queue:   make(chan string, 1),
		configs: configs,
		runs:    runs,

		cron:    cron,
		watcher: watcher,
	}
}

// Run blocks until ctx is cancelled.
func (m *ReconcileManager) Run(ctx context.Context) error {
	err := m.cron.AddFunc(m.spec, func() { m.Dispatch(TriggerCron) })
	if err != nil {
		m.logger.WithField("spec", m.spec).WithError(err).Error("Invalid cron spec")
		return err
	}

	m.logger.WithField("spec", m.spec).Debug("Starting cron")
	m.cron.Start()
	defer m.cron.Stop()

	wg := &sync.WaitGroup{}

	if m.watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := m.watcher.Watch(ctx, func() { m.Dispatch(TriggerWatch) })
			if err != nil {
				m.logger.WithError(err).Error("Directory watcher stopped")
			}
		}()
	}

	m.Dispatch(TriggerStartup)

	for {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil
		case trigger := <-m.queue:
			m.Reconcile(ctx, trigger)
		}
	}
}

// Dispatch queues a reconcile pass. It never blocks: when a pass is already
// queued the trigger is dropped, since the queued pass covers it.
func (m *ReconcileManager) Dispatch(trigger string) {
	fields := logrus.Fields{"trigger": trigger, "dispatched_at": time.Now()}

	select {
	case m.queue <- trigger:
		m.logger.WithFields(fields).Debug("Dispatched reconcile")
	default:
		m.logger.WithFields(fields).Warn("Reconcile already pending, dropping trigger")
	}
}

// Reconcile reloads the shared settings and rewrites the logrotate directory.
func (m *ReconcileManager) Reconcile(ctx context.Context, trigger string) Run {
	ctx, run := m.runs.Begin(ctx, trigger)
	logger := appcontext.LoggerFromContext(m.logger, ctx)

	logger.Info("Reconciling logrotate configuration")

	var report ModifyReport

	err := m.configs.ReadConfig()
	if err == nil {
		report, err = m.configs.ModifyConfigs(ctx)
	}

	if err != nil {
		logger.WithError(err).Error("Unable to reconcile logrotate configuration")
	}

	return m.runs.Finish(ctx, run, report, err)
}

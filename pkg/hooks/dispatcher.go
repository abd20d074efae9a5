package hooks

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yurykabanov/logrotator/pkg/appcontext"
	"github.com/yurykabanov/logrotator/pkg/domain"
	"github.com/yurykabanov/logrotator/pkg/settings"
)

type Action string

const (
	ActionInstall              Action = "install"
	ActionConfigChanged        Action = "config-changed"
	ActionUpdateLogrotateFiles Action = "update-logrotate-files"
	ActionUpdateCronjob        Action = "update-cronjob"
	ActionCron                 Action = "cron"
	ActionServe                Action = "serve"
)

var Actions = []Action{
	ActionInstall,
	ActionConfigChanged,
	ActionUpdateLogrotateFiles,
	ActionUpdateCronjob,
	ActionCron,
	ActionServe,
}

func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}

	return "", fmt.Errorf("Action %s undefined", s)
}

// Unit status reported through the "status" log field
const (
	StatusMaintenance = "maintenance"
	StatusActive      = "active"
	StatusBlocked     = "blocked"
)

type configManager interface {
	ReadConfig() error
	ModifyConfigs(context.Context) (domain.ModifyReport, error)
}

type cronjobInstaller interface {
	ReadConfig() error
	InstallCronjob() error
}

type runJournal interface {
	Begin(context.Context, string) (context.Context, domain.Run)
	Finish(context.Context, domain.Run, domain.ModifyReport, error) domain.Run
}

type DispatcherConfig struct {
	// Shared settings file the lifecycle hooks dump Record into
	SettingsPath string

	// Operator settings as configured for this host
	Record settings.Record
}

// Dispatcher runs one lifecycle action to completion.
type Dispatcher struct {
	logger logrus.FieldLogger
	config DispatcherConfig

	configs configManager
	cronjob cronjobInstaller
	runs    runJournal
}

func NewDispatcher(
	logger logrus.FieldLogger,
	config DispatcherConfig,
	configs configManager,
	cronjob cronjobInstaller,
	runs runJournal,
) *Dispatcher {
	return &Dispatcher{
		logger:  logger,
		config:  config,
		configs: configs,
		cronjob: cronjob,
		runs:    runs,
	}
}

// Dispatch runs action and journals it. Serve is not a one-shot action and is
// rejected here.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action) error {
	ctx, run := d.runs.Begin(ctx, string(action))

	var (
		report domain.ModifyReport
		err    error
	)

	switch action {
	case ActionInstall, ActionConfigChanged:
		report, err = d.reconcile(ctx)
	case ActionUpdateLogrotateFiles, ActionCron:
		report, err = d.updateLogrotateFiles(ctx)
	case ActionUpdateCronjob:
		err = d.updateCronjob()
	default:
		err = fmt.Errorf("Action %s undefined", action)
	}

	if err != nil {
		appcontext.LoggerFromContext(d.logger, ctx).WithError(err).Error("Action failed")
	}

	d.runs.Finish(ctx, run, report, err)

	return err
}

// reconcile dumps the operator settings and applies them to both the
// logrotate directory and the cronjob.
func (d *Dispatcher) reconcile(ctx context.Context) (domain.ModifyReport, error) {
	var report domain.ModifyReport

	logger := appcontext.LoggerFromContext(d.logger, ctx)

	blocked := func(err error) (domain.ModifyReport, error) {
		logger.WithField("status", StatusBlocked).Error(err.Error())
		return report, err
	}

	logger.WithField("status", StatusMaintenance).Info("Modifying configs.")

	err := settings.Write(d.config.SettingsPath, d.config.Record)
	if err != nil {
		return blocked(err)
	}

	err = d.configs.ReadConfig()
	if err != nil {
		return blocked(err)
	}

	err = d.cronjob.ReadConfig()
	if err != nil {
		return blocked(err)
	}

	report, err = d.configs.ModifyConfigs(ctx)
	if err != nil {
		return blocked(err)
	}

	err = d.cronjob.InstallCronjob()
	if err != nil {
		return blocked(err)
	}

	logger.WithField("status", StatusActive).Info("Unit is ready.")

	return report, nil
}

func (d *Dispatcher) updateLogrotateFiles(ctx context.Context) (domain.ModifyReport, error) {
	err := d.configs.ReadConfig()
	if err != nil {
		return domain.ModifyReport{}, err
	}

	return d.configs.ModifyConfigs(ctx)
}

func (d *Dispatcher) updateCronjob() error {
	err := d.cronjob.ReadConfig()
	if err != nil {
		return err
	}

	return d.cronjob.InstallCronjob()
}

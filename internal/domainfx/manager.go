package domainfx

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/yurykabanov/logrotator/internal/configfx"
	"github.com/yurykabanov/logrotator/pkg/cronjob"
	"github.com/yurykabanov/logrotator/pkg/domain"
	"github.com/yurykabanov/logrotator/pkg/metrics"
	"github.com/yurykabanov/logrotator/pkg/watch"
)

func ConfigManagerConfigProvider(v *viper.Viper) domain.ConfigManagerConfig {
	return domain.ConfigManagerConfig{
		Directory:         v.GetString(configfx.ConfigLogrotateDirectory),
		SettingsPath:      v.GetString(configfx.ConfigSettingsPath),
		SnapshotDirectory: v.GetString(configfx.ConfigLogrotateSnapshotDirectory),
	}
}

func ConfigManager(
	logger *logrus.Logger,
	config domain.ConfigManagerConfig,
	overrides domain.Overrides,
	v *viper.Viper,
) *domain.ConfigManager {
	return domain.NewConfigManager(logger, config, overrides, v.GetInt(configfx.ConfigRetentionDays))
}

func CronjobConfigProvider(v *viper.Viper) (cronjob.Config, error) {
	executable := v.GetString(configfx.ConfigCronExecutable)
	if executable == "" {
		self, err := os.Executable()
		if err != nil {
			return cronjob.Config{}, errors.Wrap(err, "Unable to locate own executable")
		}
		executable = self
	}

	configFile := v.ConfigFileUsed()
	if configFile != "" {
		abs, err := filepath.Abs(configFile)
		if err != nil {
			return cronjob.Config{}, errors.Wrap(err, "Unable to resolve config file path")
		}
		configFile = abs
	}

	return cronjob.Config{
		BaseDirectory:  v.GetString(configfx.ConfigCronBaseDirectory),
		JobName:        v.GetString(configfx.ConfigCronJobName),
		SettingsPath:   v.GetString(configfx.ConfigSettingsPath),
		Crontab:        v.GetString(configfx.ConfigCronCrontab),
		DailyDirectory: v.GetString(configfx.ConfigCronDailyDirectory),
		Executable:     executable,
		ConfigFile:     configFile,
	}, nil
}

func CronjobInstaller(logger *logrus.Logger, config cronjob.Config) *cronjob.Installer {
	return cronjob.New(logger, config, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func MetricsCollector() *metrics.Collector {
	return metrics.NewCollector(nil)
}

func RunService(
	logger *logrus.Logger,
	repository domain.RunRepository,
	collector *metrics.Collector,
) *domain.RunService {
	return domain.NewRunService(logger, repository, collector)
}

func NewCron() *cron.Cron {
	return cron.New()
}

// Watcher is nil when serve.watch is off.
func Watcher(lc fx.Lifecycle, logger *logrus.Logger, config domain.ConfigManagerConfig, v *viper.Viper) (*watch.Watcher, error) {
	if !v.GetBool(configfx.ConfigServeWatch) {
		return nil, nil
	}

	w, err := watch.New(logger, config.Directory, watch.DefaultDebounce)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return w.Close()
		},
	})

	return w, nil
}

func ReconcileManager(
	logger *logrus.Logger,
	v *viper.Viper,
	configs *domain.ConfigManager,
	runs *domain.RunService,
	c *cron.Cron,
	watcher *watch.Watcher,
) (*domain.ReconcileManager, error) {
	spec := v.GetString(configfx.ConfigServeSchedule)

	_, err := cron.Parse(spec)
	if err != nil {
		return nil, errors.Wrapf(err, "Invalid %s", configfx.ConfigServeSchedule)
	}

	// a nil *watch.Watcher must not end up in a non-nil interface
	if watcher == nil {
		return domain.NewReconcileManager(logger, spec, configs, runs, c, nil), nil
	}

	return domain.NewReconcileManager(logger, spec, configs, runs, c, watcher), nil
}

func RunReconcileManager(lc fx.Lifecycle, logger *logrus.Logger, manager *domain.ReconcileManager) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				err := manager.Run(ctx)
				if err != nil {
					logger.WithError(err).Error("Reconcile manager stopped")
				}
				done <- err
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()

			select {
			case err := <-done:
				return err
			case <-stopCtx.Done():
				logger.Warn("Reconcile manager did not stop in time")
				return stopCtx.Err()
			}
		},
	})
}

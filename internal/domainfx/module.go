package domainfx

import (
	"go.uber.org/fx"
)

// Module provides the reconcile components shared by every action.
var Module = fx.Options(
	fx.Provide(LoadOverrides),
	fx.Provide(SettingsRecord),
	fx.Provide(ConfigManagerConfigProvider),
	fx.Provide(ConfigManager),
	fx.Provide(CronjobConfigProvider),
	fx.Provide(CronjobInstaller),
	fx.Provide(MetricsCollector),
	fx.Provide(RunService),
)

// ServeModule keeps the logrotate directory reconciled until the process stops.
var ServeModule = fx.Options(
	fx.Provide(NewCron),
	fx.Provide(Watcher),
	fx.Provide(ReconcileManager),
	fx.Invoke(RunReconcileManager),
)

package configfx

import (
	"github.com/spf13/viper"

	"github.com/yurykabanov/logrotator/pkg/cronjob"
	"github.com/yurykabanov/logrotator/pkg/domain"
	"github.com/yurykabanov/logrotator/pkg/schedule"
	"github.com/yurykabanov/logrotator/pkg/settings"
)

// Operator settings, dumped into the shared settings file by the lifecycle hooks
const (
	ConfigCronjobEnabled   = "cronjob-enabled"
	ConfigCronjobFrequency = "cronjob-frequency"
	ConfigRetentionDays    = "retention-days"
	ConfigDailySchedule    = "daily-schedule"
	ConfigOverride         = "override"
)

const (
	ConfigLogrotateDirectory         = "logrotate.directory"
	ConfigLogrotateSnapshotDirectory = "logrotate.snapshot_directory"
	ConfigSettingsPath               = "settings.path"

	ConfigCronBaseDirectory  = "cron.base_directory"
	ConfigCronJobName        = "cron.job_name"
	ConfigCronCrontab        = "cron.crontab"
	ConfigCronDailyDirectory = "cron.daily_directory"
	ConfigCronExecutable     = "cron.executable"

	ConfigServeSchedule = "serve.schedule"
	ConfigServeWatch    = "serve.watch"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigCronjobEnabled, true)
	v.SetDefault(ConfigCronjobFrequency, string(settings.Daily))
	v.SetDefault(ConfigRetentionDays, 180)
	v.SetDefault(ConfigDailySchedule, string(schedule.KindUnset))
	v.SetDefault(ConfigOverride, "[]")

	v.SetDefault(ConfigLogrotateDirectory, domain.DefaultLogrotateDirectory)
	v.SetDefault(ConfigSettingsPath, settings.DefaultPath)

	v.SetDefault(ConfigCronBaseDirectory, cronjob.DefaultBaseDirectory)
	v.SetDefault(ConfigCronJobName, cronjob.DefaultJobName)
	v.SetDefault(ConfigCronCrontab, schedule.DefaultCrontab)
	v.SetDefault(ConfigCronDailyDirectory, schedule.DefaultDailyDirectory)

	v.SetDefault(ConfigServeSchedule, "@daily")
	v.SetDefault(ConfigServeWatch, true)

	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.dsn", "/var/lib/logrotator/journal.db")
	v.SetDefault("journal.migrations", "file:///usr/share/logrotator/migrations")

	v.SetDefault("server.address", ":9115")
	v.SetDefault("server.timeout.read", "5s")
	v.SetDefault("server.timeout.write", "10s")
	v.SetDefault("server.log.requests", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 28)
}

package domainfx

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/yurykabanov/logrotator/internal/configfx"
	"github.com/yurykabanov/logrotator/pkg/domain"
	"github.com/yurykabanov/logrotator/pkg/settings"
)

// LoadOverrides parses the override declaration. It is normally a JSON
// string, but a list written natively in the config file is accepted too.
func LoadOverrides(logger *logrus.Logger, v *viper.Viper) (domain.Overrides, error) {
	raw, ok := v.Get(configfx.ConfigOverride).(string)
	if !ok && v.IsSet(configfx.ConfigOverride) {
		data, err := json.Marshal(v.Get(configfx.ConfigOverride))
		if err != nil {
			return nil, errors.Wrap(err, "Unable to unmarshal overrides")
		}
		raw = string(data)
	}

	overrides, err := domain.ParseOverrides(raw)
	if err != nil {
		return nil, err
	}

	if files := overrides.Files(); len(files) > 0 {
		logger.WithField("files", files).Info("Loaded logrotate overrides")
	}

	return overrides, nil
}

// SettingsRecord is the operator configuration the lifecycle hooks dump to
// the shared settings file.
func SettingsRecord(v *viper.Viper) (settings.Record, error) {
	frequency, ok := settings.ParseFrequency(v.GetString(configfx.ConfigCronjobFrequency))
	if !ok {
		return settings.Record{}, errors.Errorf("Unknown %s %q", configfx.ConfigCronjobFrequency, v.GetString(configfx.ConfigCronjobFrequency))
	}

	retention := v.GetInt(configfx.ConfigRetentionDays)
	if retention < 0 {
		return settings.Record{}, errors.Errorf("Negative %s %d", configfx.ConfigRetentionDays, retention)
	}

	return settings.Record{
		CronjobEnabled: v.GetBool(configfx.ConfigCronjobEnabled),
		Frequency:      frequency,
		RetentionDays:  retention,
		DailySchedule:  v.GetString(configfx.ConfigDailySchedule),
	}, nil
}

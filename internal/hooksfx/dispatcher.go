package hooksfx

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.uber.org/fx"

	"github.com/yurykabanov/logrotator/internal/configfx"
	"github.com/yurykabanov/logrotator/pkg/cronjob"
	"github.com/yurykabanov/logrotator/pkg/domain"
	"github.com/yurykabanov/logrotator/pkg/hooks"
	"github.com/yurykabanov/logrotator/pkg/settings"
)

func DispatcherConfigProvider(v *viper.Viper, record settings.Record) hooks.DispatcherConfig {
	return hooks.DispatcherConfig{
		SettingsPath: v.GetString(configfx.ConfigSettingsPath),
		Record:       record,
	}
}

func Dispatcher(
	logger *logrus.Logger,
	config hooks.DispatcherConfig,
	configs *domain.ConfigManager,
	installer *cronjob.Installer,
	runs *domain.RunService,
) *hooks.Dispatcher {
	return hooks.NewDispatcher(logger, config, configs, installer, runs)
}

// RunAction runs the one-shot action on start, so a failed action fails
// app.Start.
func RunAction(lc fx.Lifecycle, dispatcher *hooks.Dispatcher, action hooks.Action) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return dispatcher.Dispatch(ctx, action)
		},
	})
}

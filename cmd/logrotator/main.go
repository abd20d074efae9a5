package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/fx"

	"github.com/yurykabanov/logrotator/internal/configfx"
	"github.com/yurykabanov/logrotator/internal/domainfx"
	"github.com/yurykabanov/logrotator/internal/hooksfx"
	"github.com/yurykabanov/logrotator/internal/loggerfx"
	"github.com/yurykabanov/logrotator/internal/sqlfx"
	"github.com/yurykabanov/logrotator/internal/statusfx"
	"github.com/yurykabanov/logrotator/pkg/hooks"
)

// One-shot actions rewrite a whole directory, give them more than the
// default start timeout.
const actionTimeout = 5 * time.Minute

func main() {
	logger := loggerfx.Logger()

	flags := configfx.PFlags()
	flags.Parse(os.Args[1:])

	action, err := hooks.ParseAction(flags.Arg(0))
	if err != nil {
		flags.Usage()
		logger.WithError(err).Fatal("Unable to start")
	}

	options := []fx.Option{
		fx.StartTimeout(15 * time.Second),
		fx.StopTimeout(15 * time.Second),

		loggerfx.FxLogger(logger),

		fx.Provide(func() *pflag.FlagSet { return flags }),
		fx.Provide(func() hooks.Action { return action }),

		loggerfx.Module,
		configfx.Module,
		sqlfx.Module,
		domainfx.Module,
	}

	if action == hooks.ActionServe {
		options = append(options, domainfx.ServeModule, statusfx.Module)

		fx.New(options...).Run()
		return
	}

	options = append(options, hooksfx.Module)
	app := fx.New(options...)

	startCtx, cancel := context.WithTimeout(context.Background(), actionTimeout)
	defer cancel()

	err = app.Start(startCtx)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer stopCancel()

	if stopErr := app.Stop(stopCtx); stopErr != nil {
		logger.WithError(stopErr).Warn("Unable to stop cleanly")
	}

	if err != nil {
		logger.WithError(err).WithField("action", string(action)).Error("Action failed")
		os.Exit(1)
	}
}

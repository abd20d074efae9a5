package hooksfx

import (
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(DispatcherConfigProvider),
	fx.Provide(Dispatcher),
	fx.Invoke(RunAction),
)

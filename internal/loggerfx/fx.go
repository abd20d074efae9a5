package loggerfx

import (
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"
)

type fxPrinter struct {
	logger logrus.FieldLogger
}

func (p fxPrinter) Printf(format string, args ...interface{}) {
	p.logger.Debugf(format, args...)
}

// FxLogger keeps fx's own provide/invoke chatter at debug level.
func FxLogger(logger *logrus.Logger) fx.Option {
	return fx.Logger(fxPrinter{logger: logger.WithField("component", "fx")})
}

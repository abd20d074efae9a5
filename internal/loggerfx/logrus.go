package loggerfx

import (
	"context"
	"log"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	ConfigLogLevel      = "log.level"
	ConfigLogFormat     = "log.format"
	ConfigLogFile       = "log.file"
	ConfigLogMaxSize    = "log.max_size"
	ConfigLogMaxBackups = "log.max_backups"
	ConfigLogMaxAge     = "log.max_age"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logger.SetFormatter(&logrus.TextFormatter{})
}

func Logger() *logrus.Logger {
	return logger
}

// DefaultLoggerAdapter routes net/http server errors into logrus.
func DefaultLoggerAdapter(logger *logrus.Logger) *log.Logger {
	return log.New(logger.WriterLevel(logrus.ErrorLevel), "", 0)
}

func ConfigureLogger(lc fx.Lifecycle, logger *logrus.Logger, v *viper.Viper) {
	logLevel := v.GetString(ConfigLogLevel)
	logFormat := v.GetString(ConfigLogFormat)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}

	logger.SetLevel(level)

	switch logFormat {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		fallthrough
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{})
	}

	if file := v.GetString(ConfigLogFile); file != "" {
		out := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    v.GetInt(ConfigLogMaxSize),    // megabytes
			MaxBackups: v.GetInt(ConfigLogMaxBackups), // files
			MaxAge:     v.GetInt(ConfigLogMaxAge),     // days
		}

		logger.SetOutput(out)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return out.Close()
			},
		})
	}
}

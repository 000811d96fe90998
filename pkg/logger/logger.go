package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Log *zap.Logger

// DefaultLevel is used outside debug mode when LOG_LEVEL is empty or invalid.
const DefaultLevel = zapcore.ErrorLevel

// Init builds the global logger. Debug mode logs everything in a human
// readable form; otherwise JSON at the given level goes to stderr so stdout
// stays reserved for the run report.
func Init(debug bool, level ...string) {
	var config zap.Config
	if debug {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(ParseLevel(level...))
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	config.OutputPaths = []string{"stderr"}

	var err error
	Log, err = config.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
}

// ParseLevel returns the first parseable level, or DefaultLevel.
func ParseLevel(level ...string) zapcore.Level {
	for _, l := range level {
		if l == "" {
			continue
		}
		if parsed, err := zapcore.ParseLevel(l); err == nil {
			return parsed
		}
	}
	return DefaultLevel
}

func SetLogger(l *zap.Logger) {
	Log = l
}

func GetLogger() *zap.Logger {
	if Log == nil {
		Init(false)
	}
	return Log
}

func WithField(key string, value interface{}) *zap.Logger {
	return GetLogger().With(zap.Any(key, value))
}

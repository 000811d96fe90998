package logger_test

import (
	"testing"

	"github.com/elatovg/gce-snapshots/pkg/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel("info"))
	assert.Equal(t, zapcore.WarnLevel, logger.ParseLevel("", "warn"))
	assert.Equal(t, logger.DefaultLevel, logger.ParseLevel("loud"))
	assert.Equal(t, logger.DefaultLevel, logger.ParseLevel())
}

func TestInit(t *testing.T) {
	original := logger.Log
	defer logger.SetLogger(original)

	logger.Init(true)
	assert.True(t, logger.Log.Core().Enabled(zapcore.DebugLevel))

	logger.Init(false, "warn")
	assert.False(t, logger.Log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Log.Core().Enabled(zapcore.WarnLevel))
}

func TestWithField(t *testing.T) {
	original := logger.Log
	defer logger.SetLogger(original)

	core, recorded := observer.New(zap.InfoLevel)
	logger.SetLogger(zap.New(core))

	logger.WithField("component", "engine").Info("hello")

	entries := recorded.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "engine", entries[0].ContextMap()["component"])
	}
}

func TestGetLoggerInitializesLazily(t *testing.T) {
	original := logger.Log
	defer logger.SetLogger(original)

	logger.SetLogger(nil)
	assert.NotNil(t, logger.GetLogger())
}

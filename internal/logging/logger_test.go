package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFromContext(t *testing.T) {
	t.Parallel()
	assert.Same(t, DefaultLogger(), FromContext(context.Background()))

	logger := zap.NewNop().Sugar()
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestLevelToZapLevel(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		level    string
		expected zapcore.Level
	}{
		{name: "debug", level: "debug", expected: zapcore.DebugLevel},
		{name: "warning", level: " WARNING ", expected: zapcore.WarnLevel},
		{name: "error", level: "ERROR", expected: zapcore.ErrorLevel},
		{name: "empty", level: "", expected: zapcore.InfoLevel},
		{name: "unknown", level: "verbose", expected: zapcore.InfoLevel},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, levelToZapLevel(test.level))
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()
	assert.True(t, NewLogger("debug", true).Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.False(t, NewLogger("error", false).Desugar().Core().Enabled(zapcore.WarnLevel))
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SPATIAL_LOG_LEVEL", "debug")
	t.Setenv("SPATIAL_LOG_DEV", "true")
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, Config{Level: "debug", Development: true}, cfg)
	assert.True(t, NewLoggerFromEnv().Desugar().Core().Enabled(zapcore.DebugLevel))

	t.Setenv("SPATIAL_LOG_DEV", "sometimes")
	cfg, err = ConfigFromEnv()
	assert.Error(t, err)
	assert.Equal(t, Config{Level: "INFO"}, cfg)
	assert.False(t, NewLoggerFromEnv().Desugar().Core().Enabled(zapcore.DebugLevel))
}

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		l, err := New(DefaultConfig())
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("production config", func(t *testing.T) {
		l, err := New(ProductionConfig())
		require.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("nil config falls back to defaults", func(t *testing.T) {
		l, err := New(nil)
		require.NoError(t, err)
		assert.NotNil(t, l)
	})
}

func TestNewForEnvironment(t *testing.T) {
	for _, env := range []string{"development", "production", "test", ""} {
		l, err := NewForEnvironment(env)
		require.NoError(t, err, "env %q", env)
		assert.NotNil(t, l)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLevel(tt.input), "level %q", tt.input)
	}
}

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trogers1052/stock-journal/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("honours the configured level", func(t *testing.T) {
		log, err := New(config.LogConfig{Level: "DEBUG", Encoding: "json"})
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		log, err := New(config.LogConfig{Level: "loud", Encoding: "console"})
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	})

	t.Run("unknown encoding builds as json", func(t *testing.T) {
		_, err := New(config.LogConfig{Level: "info", Encoding: "xml", Sampling: true})
		assert.NoError(t, err)
	})
}

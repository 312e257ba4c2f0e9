package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelforge/tagmatch/pkg/logging"
)

func TestConfigFunctions(t *testing.T) {
	// Save and restore the original logger and level
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("DefaultConfig returns sensible defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.NotNil(t, cfg)
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.False(t, cfg.AddCaller)
		assert.Equal(t, "stderr", cfg.Output)
	})

	t.Run("NewLoggerFromConfig writes to file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.log")

		cfg := &logging.Config{
			Level:  "debug",
			Format: "json",
			Output: path,
		}

		logger := logging.NewLoggerFromConfig(cfg)
		logger.Info().Str("vendor", "acme").Msg("test message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "test message")
		assert.Contains(t, string(content), "acme")
	})

	t.Run("NewLoggerFromConfig tolerates nil config", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(nil)
		logger.Info().Msg("defaults")
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		cfg := &logging.Config{Level: "shouting", Format: "json", Output: "discard"}
		logger := logging.NewLoggerFromConfig(cfg)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("default fields appear in every event", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "fields.log")

		cfg := &logging.Config{
			Level:  "info",
			Format: "json",
			Output: path,
			Fields: map[string]any{"component": "matcher", "attempt": 2},
		}

		logger := logging.NewLoggerFromConfig(cfg)
		logger.Info().Msg("with fields")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"component":"matcher"`)
		assert.Contains(t, string(content), `"attempt":2`)
	})

	t.Run("Configure replaces the default logger", func(t *testing.T) {
		cfg := &logging.Config{Level: "warn", Format: "json", Output: "discard"}
		logging.Configure(cfg)
		assert.Equal(t, zerolog.WarnLevel, logging.Default().GetLevel())
	})
}

func TestTestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)
	tl.Info().Str("run_id", "run-1").Msg("captured")

	assert.True(t, tl.Contains("captured"))

	events := tl.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "run-1", events[0]["run_id"])
}

package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/labelforge/tagmatch/internal/config"
)

func TestGetString(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("viper value wins", func(t *testing.T) {
		viper.Set("log_level", "debug")
		defer viper.Reset()
		assert.Equal(t, "debug", config.GetString("log_level", "info"))
	})

	t.Run("environment fallback", func(t *testing.T) {
		t.Setenv("TAGMATCH_TEST_KEY", "warn")
		assert.Equal(t, "warn", config.GetString("TAGMATCH_TEST_KEY", "info"))
	})

	t.Run("default when unset", func(t *testing.T) {
		assert.Equal(t, "info", config.GetString("tagmatch_missing_key", "info"))
	})
}

func TestGetNumericHelpers(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("fallback when unset", func(t *testing.T) {
		assert.Equal(t, 0.3, config.GetFloat64("match.threshold", 0.3))
		assert.Equal(t, 50, config.GetInt("match.candidate_cap", 50))
		assert.Equal(t, 600*time.Second, config.GetDuration("match.timeout", 600*time.Second))
	})

	t.Run("configured values win", func(t *testing.T) {
		viper.Set("match.threshold", 0.5)
		viper.Set("match.candidate_cap", 25)
		viper.Set("match.timeout", "30s")
		defer viper.Reset()

		assert.Equal(t, 0.5, config.GetFloat64("match.threshold", 0.3))
		assert.Equal(t, 25, config.GetInt("match.candidate_cap", 50))
		assert.Equal(t, 30*time.Second, config.GetDuration("match.timeout", 600*time.Second))
	})
}

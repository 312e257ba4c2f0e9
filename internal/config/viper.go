// Package config provides helpers for reading configuration values
// through Viper with OS environment fallback.
package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

// GetString returns a string configuration value, preferring Viper, then
// the OS environment, then the fallback.
func GetString(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetFloat64 returns a float64 configuration value, or the fallback when
// the key is unset.
func GetFloat64(key string, fallback float64) float64 {
	if !viper.IsSet(key) {
		return fallback
	}
	return viper.GetFloat64(key)
}

// GetInt returns an int configuration value, or the fallback when the key
// is unset.
func GetInt(key string, fallback int) int {
	if !viper.IsSet(key) {
		return fallback
	}
	return viper.GetInt(key)
}

// GetDuration returns a duration configuration value, or the fallback when
// the key is unset.
func GetDuration(key string, fallback time.Duration) time.Duration {
	if !viper.IsSet(key) {
		return fallback
	}
	return viper.GetDuration(key)
}

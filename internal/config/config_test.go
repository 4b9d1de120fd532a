package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadRequiresCredentials(t *testing.T) {
	t.Setenv("GARMIN_EMAIL", "")
	t.Setenv("GARMIN_PASSWORD", "")

	_, err := Load()
	require.ErrorIs(t, err, ErrMissingCredentials)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GARMIN_EMAIL", "user@example.com")
	t.Setenv("GARMIN_PASSWORD", "hunter2")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "localhost", cfg.AWHost)
	require.Equal(t, 5600, cfg.AWPort)
	require.Equal(t, "garmin-health", cfg.Bucket)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.Empty(t, cfg.PushgatewayURL)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "http://localhost:5600", cfg.AWBaseURL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GARMIN_EMAIL", "user@example.com")
	t.Setenv("GARMIN_PASSWORD", "hunter2")
	t.Setenv("AW_HOST", "aw.internal")
	t.Setenv("AW_PORT", "5666")
	t.Setenv("AW_BUCKET", "garmin-test")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("PUSHGATEWAY_URL", "http://pushgateway:9091")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://aw.internal:5666", cfg.AWBaseURL())
	require.Equal(t, "garmin-test", cfg.Bucket)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, "http://pushgateway:9091", cfg.PushgatewayURL)
}

func TestLoadIgnoresMalformedOptionalValues(t *testing.T) {
	t.Setenv("GARMIN_EMAIL", "user@example.com")
	t.Setenv("GARMIN_PASSWORD", "hunter2")
	t.Setenv("AW_PORT", "not-a-port")
	t.Setenv("HTTP_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 5600, cfg.AWPort)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
}

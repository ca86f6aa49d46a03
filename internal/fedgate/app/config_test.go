package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, "fedgate.db", cfg.DatabaseFile)
	require.Equal(t, "pepper", cfg.PepperFile)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 15*time.Second, cfg.ExchangeTimeout)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, 1*time.Hour, cfg.HousekeepingInterval)
	require.False(t, cfg.DevReset)
	require.False(t, cfg.ExchangeDisabled)
	require.Nil(t, cfg.Scopes)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("FEDGATE_AUTHORITY", "https://login.example.com")
	t.Setenv("FEDGATE_CLIENT_ID", "client")
	t.Setenv("FEDGATE_CLIENT_SECRET", "secret")
	t.Setenv("FEDGATE_SCOPES", "openid profile")
	t.Setenv("FEDGATE_EXCHANGE_DISABLED", "true")
	t.Setenv("FEDGATE_DEV_RESET", "1")
	t.Setenv("HOUSEKEEPING_INTERVAL", "30m")
	t.Setenv("PORT", "9090")

	cfg := LoadConfig()

	require.Equal(t, "https://login.example.com", cfg.Authority)
	require.Equal(t, "client", cfg.ClientID)
	require.Equal(t, []string{"openid", "profile"}, cfg.Scopes)
	require.True(t, cfg.ExchangeDisabled)
	require.True(t, cfg.DevReset)
	require.Equal(t, 30*time.Minute, cfg.HousekeepingInterval)
	require.Equal(t, 9090, cfg.Port)
}

func TestLoadConfigIgnoresBadValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("FEDGATE_EXCHANGE_DISABLED", "sometimes")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "5")

	cfg := LoadConfig()

	require.Equal(t, 8080, cfg.Port)
	require.False(t, cfg.ExchangeDisabled)
	// bare integers are read as minutes
	require.Equal(t, 5*time.Minute, cfg.ShutdownGracePeriod)
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("GROWATT_USERNAME", "test_username")
	t.Setenv("GROWATT_PASSWORD", "test_password")
	t.Setenv("GROWATT_BASE_URL", "https://openapi.growatt.com")
	t.Setenv("GROWATT_SESSION_DURATION", "45")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "test_username", cfg.Username)
	assert.Equal(t, "test_password", cfg.Password)
	assert.Equal(t, "https://openapi.growatt.com", cfg.BaseURL)
	assert.Equal(t, 45*time.Minute, cfg.SessionDuration())
}

func TestFromEnvDefaults(t *testing.T) {
	// t.Setenv registers restoration of any pre-existing value; the explicit
	// unset makes sure the parse sees a clean environment.
	for _, key := range []string{"GROWATT_USERNAME", "GROWATT_PASSWORD", "GROWATT_BASE_URL", "GROWATT_SESSION_DURATION"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Empty(t, cfg.Username)
	assert.Empty(t, cfg.Password)
	assert.Equal(t, "https://server.growatt.com", cfg.BaseURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionDuration())
}

// Repeated loads must be independent; a value set for one parse must not
// leak into the next.
func TestFromEnvIndependentLoads(t *testing.T) {
	t.Setenv("GROWATT_USERNAME", "first")
	first, err := FromEnv()
	require.NoError(t, err)

	t.Setenv("GROWATT_USERNAME", "second")
	second, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "first", first.Username)
	assert.Equal(t, "second", second.Username)
}

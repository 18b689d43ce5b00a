package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "9000")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "storefront")
	t.Setenv("JWT_SECRET", "secret")
}

func TestFromEnvRefusesWhenRequiredMissing(t *testing.T) {
	setRequired(t)
	t.Setenv("MONGO_URI", "")
	t.Setenv("JWT_SECRET", "   ")

	_, err := FromEnv()
	require.Error(t, err)

	var missing *MissingError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"MONGO_URI", "JWT_SECRET"}, missing.Keys)
	assert.Contains(t, err.Error(), "MONGO_URI, JWT_SECRET")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("CATALOG_ADMIN_ONLY", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "storefront", cfg.DBName)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.False(t, cfg.CatalogAdminOnly)
	assert.Empty(t, cfg.RedisAddr)
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("ACCESS_TOKEN_TTL", "30")
	t.Setenv("CATALOG_ADMIN_ONLY", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_TTL", "not-a-number")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.True(t, cfg.CatalogAdminOnly)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
}

func TestLoadWithoutDotEnvLogsThroughLogrus(t *testing.T) {
	setRequired(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	hook := test.NewGlobal()
	t.Cleanup(hook.Reset)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "CONFIG", entry.Data["area"])
	assert.Contains(t, entry.Message, ".env not loaded")
}

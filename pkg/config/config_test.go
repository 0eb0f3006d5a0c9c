package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("STORE_KEY", "")
	t.Setenv("SESSION_TTL_MINUTES", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "users", cfg.Store.Key)
	assert.Equal(t, 60, cfg.Session.TTLMinutes)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DATASET_URL", "s3://seed/celebrities.json")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverRedis, cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "s3://seed/celebrities.json", cfg.Dataset.URL)
	assert.True(t, cfg.Minio.UseSSL)
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "etcd")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "etcd")
}

func TestLoadConfig_BadIntFallsBack(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("SESSION_TTL_MINUTES", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Session.TTLMinutes)
}

func TestAdminToken_FallsBackToJWTSecret(t *testing.T) {
	cfg := &Config{JWT: JWTConfig{Secret: "s3cret"}}
	assert.Equal(t, "s3cret", cfg.AdminToken())

	cfg.Admin.Token = "admin"
	assert.Equal(t, "admin", cfg.AdminToken())
}

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joimopro25-dot/allinstock-sub001/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Minute, cfg.Notify.PollInterval)
	assert.False(t, cfg.Storage.Enabled(), "sin bucket el archivo está deshabilitado")
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("NOTIFY_POLL_INTERVAL", "30s")
	t.Setenv("STORAGE_BUCKET", "informes")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.Notify.PollInterval)
	assert.True(t, cfg.Storage.Enabled())
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_DriverInvalido(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "allinstock", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/allinstock?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joimopro25-dot/allinstock-sub001/pkg/config"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

func memoryConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Env: "test", Name: "allinstock-test"},
		Store:  config.StoreConfig{Driver: "memory"},
		HTTP:   config.HTTPConfig{Host: "127.0.0.1", Port: 0},
		JWT:    config.JWTConfig{Secret: "secreto-de-prueba"},
		Notify: config.NotifyConfig{PollInterval: time.Second, ExpiryWindow: time.Hour},
	}
}

func TestRun_RedisInalcanzable_DevuelveError(t *testing.T) {
	cfg := memoryConfig()
	cfg.Redis.Addr = "127.0.0.1:1"

	err := run(context.Background(), cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión a Redis")
}

func TestRun_ContextoCancelado_ApagaSinError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, memoryConfig(), logger.Nop()) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("run no terminó tras cancelar el contexto")
	}
}

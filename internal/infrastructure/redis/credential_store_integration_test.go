//go:build integration

package redis_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/redis"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/config"
)

func newTestStore(t *testing.T) *redis.CredentialStore {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := redis.NewClient(ctx, config.RedisConfig{Addr: endpoint})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store, err := redis.NewCredentialStore(client, strings.Repeat("ab", 32), "test:oauth:")
	require.NoError(t, err)
	return store
}

func TestCredentialStore_Ciclo(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	got, err := store.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.Nil(t, got)

	exp := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, &entity.OAuthCredential{CompanyID: "c1", UserID: "u1", AccessToken: "tok", RefreshToken: "ref", Expiry: exp}))

	got, err = store.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "tok", got.AccessToken)
	assert.Equal(t, "ref", got.RefreshToken)
	assert.True(t, exp.Equal(got.Expiry))

	other, err := store.Get(ctx, "c2", "u1")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, store.Clear(ctx, "c1", "u1"))
	require.NoError(t, store.Clear(ctx, "c1", "u1"))
	got, err = store.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/inventory"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/document"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/postgres"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/config"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

// newTestStore levanta un PostgreSQL efímero, aplica migraciones y devuelve el store.
func newTestStore(t *testing.T) *postgres.DocumentStore {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("allinstock_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	return postgres.NewDocumentStore(pool)
}

func TestDocumentStore_CicloDeVida(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	coll := repository.StockLocationsPath("c1", "p1")

	id, err := store.Create(ctx, coll, json.RawMessage(`{"name":"Armazém","quantity":5}`))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := store.Get(ctx, coll, id)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.JSONEq(t, `{"name":"Armazém","quantity":5}`, string(doc.Data))

	require.NoError(t, store.Update(ctx, coll, id, json.RawMessage(`{"name":"Armazém","quantity":7}`)))
	docs, err := store.List(ctx, coll)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.JSONEq(t, `{"name":"Armazém","quantity":7}`, string(docs[0].Data))

	require.NoError(t, store.Delete(ctx, coll, id))
	doc, err = store.Get(ctx, coll, id)
	require.NoError(t, err)
	assert.Nil(t, doc)

	assert.NoError(t, store.Delete(ctx, coll, id), "borrar un documento inexistente no es error")
}

func TestDocumentStore_UpdateInexistente(t *testing.T) {
	store := newTestStore(t)
	err := store.Update(context.Background(), repository.ProductsPath("c1"), "nope", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_AislamientoPorEmpresa(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, repository.ProductsPath("c1"), json.RawMessage(`{"name":"A"}`))
	require.NoError(t, err)

	docs, err := store.List(ctx, repository.ProductsPath("c2"))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLedger_ListLocationsSobrePostgres_LecturasRepetidasIguales(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	log := logger.Nop()
	products := document.NewProductRepository(store)
	ledger := inventory.NewLedgerUseCase(products, document.NewStockLocationRepository(store), log)

	p := &entity.Product{CompanyID: "c1", Name: "Tinta"}
	require.NoError(t, products.Create(ctx, p))
	for _, in := range []dto.AddLocationRequest{
		{Name: "Bodega", Quantity: 10, IsMain: true},
		{Name: "Furgoneta", Type: entity.LocationTypeTransit, Quantity: "4"},
		{Name: "Cliente Norte", Type: entity.LocationTypeCustomer, Quantity: 1},
	} {
		_, err := ledger.AddLocation(ctx, "c1", p.ID, in)
		require.NoError(t, err)
	}

	first, err := ledger.ListLocations(ctx, "c1", p.ID)
	require.NoError(t, err)
	second, err := ledger.ListLocations(ctx, "c1", p.ID)
	require.NoError(t, err)

	assert.ElementsMatch(t, first.Items, second.Items)
	assert.Equal(t, 15, second.TotalStock)
}

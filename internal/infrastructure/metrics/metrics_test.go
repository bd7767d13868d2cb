package metrics_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/memstore"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/metrics"
)

func TestInstrumentedStore_CuentaOperaciones(t *testing.T) {
	m := metrics.New()
	store := metrics.NewInstrumentedStore(memstore.NewDocumentStore(), m)
	ctx := context.Background()
	coll := repository.StockLocationsPath("c1", "p1")

	id, err := store.Create(ctx, coll, json.RawMessage(`{"name":"A"}`))
	require.NoError(t, err)
	_, err = store.List(ctx, coll)
	require.NoError(t, err)
	err = store.Update(ctx, coll, "missing", json.RawMessage(`{}`))
	require.Error(t, err)
	require.NoError(t, store.Delete(ctx, coll, id))

	expected := `
# HELP allinstock_store_operations_total Operaciones sobre el almacén documental por colección, operación y resultado.
# TYPE allinstock_store_operations_total counter
allinstock_store_operations_total{collection="stockLocations",op="create",result="ok"} 1
allinstock_store_operations_total{collection="stockLocations",op="delete",result="ok"} 1
allinstock_store_operations_total{collection="stockLocations",op="list",result="ok"} 1
allinstock_store_operations_total{collection="stockLocations",op="update",result="error"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "allinstock_store_operations_total"))
}

func TestNewInstrumentedStore_SinMetricas(t *testing.T) {
	inner := memstore.NewDocumentStore()
	assert.Same(t, inner, metrics.NewInstrumentedStore(inner, nil))
}

func TestHandler_ExponeMetricas(t *testing.T) {
	m := metrics.New()
	m.PollTick(nil)
	m.GoogleCall("gmail", errors.New("boom"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `allinstock_notifications_poll_ticks_total{result="ok"} 1`)
	assert.Contains(t, body, `allinstock_google_calls_total{api="gmail",result="error"} 1`)
}

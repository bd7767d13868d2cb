package memstore_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/memstore"
)

func TestDocumentStore_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	s := memstore.NewDocumentStore()
	const col = "companies/c1/products"

	id, err := s.Create(ctx, col, json.RawMessage(`{"name":"a"}`))
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := s.Get(ctx, col, id)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.JSONEq(t, `{"name":"a"}`, string(doc.Data))

	require.NoError(t, s.Update(ctx, col, id, json.RawMessage(`{"name":"b"}`)))
	doc, _ = s.Get(ctx, col, id)
	assert.JSONEq(t, `{"name":"b"}`, string(doc.Data))

	list, err := s.List(ctx, col)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.Delete(ctx, col, id))
	doc, err = s.Get(ctx, col, id)
	require.NoError(t, err)
	assert.Nil(t, doc, "tras borrar, Get devuelve ausente")
	assert.NoError(t, s.Delete(ctx, col, id), "borrar dos veces no es error")
}

func TestDocumentStore_UpdateInexistente(t *testing.T) {
	s := memstore.NewDocumentStore()
	err := s.Update(context.Background(), "companies/c1/clients", "nope", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ColeccionesAisladas(t *testing.T) {
	ctx := context.Background()
	s := memstore.NewDocumentStore()
	_, err := s.Create(ctx, "companies/c1/clients", json.RawMessage(`{}`))
	require.NoError(t, err)

	other, err := s.List(ctx, "companies/c2/clients")
	require.NoError(t, err)
	assert.Empty(t, other, "otra empresa no ve los documentos")
}

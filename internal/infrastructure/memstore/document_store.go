// Package memstore implementa los puertos de persistencia en memoria.
// Se usa en tests y con STORE_DRIVER=memory (desarrollo local sin PostgreSQL).
package memstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore almacén documental en memoria, seguro para uso concurrente.
type DocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]repository.Document
	now         func() time.Time
}

// NewDocumentStore construye un almacén vacío.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string]map[string]repository.Document),
		now:         time.Now,
	}
}

// List devuelve copias de todos los documentos de la colección, ordenados por creación.
func (s *DocumentStore) List(_ context.Context, collection string) ([]repository.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := s.collections[collection]
	out := make([]repository.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, copyDoc(d))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Get devuelve (nil, nil) si no existe.
func (s *DocumentStore) Get(_ context.Context, collection, id string) (*repository.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.collections[collection][id]
	if !ok {
		return nil, nil
	}
	c := copyDoc(d)
	return &c, nil
}

// Create guarda el documento con un ID nuevo.
func (s *DocumentStore) Create(_ context.Context, collection string, data json.RawMessage) (string, error) {
	if !repository.ValidCollection(collection) || !json.Valid(data) {
		return "", domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]repository.Document)
		s.collections[collection] = docs
	}
	now := s.now()
	id := uuid.New().String()
	docs[id] = repository.Document{ID: id, Data: cloneBytes(data), CreatedAt: now, UpdatedAt: now}
	return id, nil
}

// Update reemplaza los datos del documento.
func (s *DocumentStore) Update(_ context.Context, collection, id string, data json.RawMessage) error {
	if !repository.ValidCollection(collection) || !json.Valid(data) {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.collections[collection][id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Data = cloneBytes(data)
	d.UpdatedAt = s.now()
	s.collections[collection][id] = d
	return nil
}

// Delete elimina el documento; no es error si no existe.
func (s *DocumentStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.collections[collection], id)
	return nil
}

func copyDoc(d repository.Document) repository.Document {
	d.Data = cloneBytes(d.Data)
	return d
}

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

package metrics

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
)

var _ repository.DocumentStore = (*InstrumentedStore)(nil)

// InstrumentedStore decora un DocumentStore contando operaciones y latencias.
type InstrumentedStore struct {
	next repository.DocumentStore
	m    *Metrics
}

// NewInstrumentedStore envuelve next. Con m == nil devuelve next sin decorar.
func NewInstrumentedStore(next repository.DocumentStore, m *Metrics) repository.DocumentStore {
	if m == nil {
		return next
	}
	return &InstrumentedStore{next: next, m: m}
}

func (s *InstrumentedStore) List(ctx context.Context, collection string) ([]repository.Document, error) {
	start := time.Now()
	docs, err := s.next.List(ctx, collection)
	s.observe(collection, "list", start, err)
	return docs, err
}

func (s *InstrumentedStore) Get(ctx context.Context, collection, id string) (*repository.Document, error) {
	start := time.Now()
	doc, err := s.next.Get(ctx, collection, id)
	s.observe(collection, "get", start, err)
	return doc, err
}

func (s *InstrumentedStore) Create(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	start := time.Now()
	id, err := s.next.Create(ctx, collection, data)
	s.observe(collection, "create", start, err)
	return id, err
}

func (s *InstrumentedStore) Update(ctx context.Context, collection, id string, data json.RawMessage) error {
	start := time.Now()
	err := s.next.Update(ctx, collection, id, data)
	s.observe(collection, "update", start, err)
	return err
}

func (s *InstrumentedStore) Delete(ctx context.Context, collection, id string) error {
	start := time.Now()
	err := s.next.Delete(ctx, collection, id)
	s.observe(collection, "delete", start, err)
	return err
}

func (s *InstrumentedStore) observe(collection, op string, start time.Time, err error) {
	s.m.storeOps.WithLabelValues(collectionKind(collection), op, result(err)).Inc()
	s.m.storeDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// collectionKind reduce la ruta al último segmento ("stockLocations") para acotar la cardinalidad.
func collectionKind(collection string) string {
	if i := strings.LastIndexByte(collection, '/'); i >= 0 {
		return collection[i+1:]
	}
	return collection
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
)

var _ repository.DocumentStore = (*DocumentStore)(nil)

// DocumentStore implementación del almacén documental sobre una tabla JSONB (usable con pool o tx).
type DocumentStore struct {
	q Querier
}

// NewDocumentStore construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentStore(q Querier) *DocumentStore {
	return &DocumentStore{q: q}
}

// List devuelve los documentos de la colección ordenados por creación.
func (s *DocumentStore) List(ctx context.Context, collection string) ([]repository.Document, error) {
	query := `
		SELECT id, data, created_at, updated_at
		FROM documents WHERE collection = $1
		ORDER BY created_at, id`
	rows, err := s.q.Query(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []repository.Document
	for rows.Next() {
		var d repository.Document
		var data []byte
		if err := rows.Scan(&d.ID, &data, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.Data = data
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}

// Get obtiene un documento; (nil, nil) si no existe.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*repository.Document, error) {
	query := `
		SELECT id, data, created_at, updated_at
		FROM documents WHERE collection = $1 AND id = $2`
	var d repository.Document
	var data []byte
	err := s.q.QueryRow(ctx, query, collection, id).Scan(&d.ID, &data, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	d.Data = data
	return &d, nil
}

// Create inserta el documento con un UUID nuevo y lo devuelve.
func (s *DocumentStore) Create(ctx context.Context, collection string, data json.RawMessage) (string, error) {
	if !repository.ValidCollection(collection) || !json.Valid(data) {
		return "", domain.ErrInvalidInput
	}
	id := uuid.New().String()
	query := `
		INSERT INTO documents (collection, id, data, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, now(), now())`
	if _, err := s.q.Exec(ctx, query, collection, id, string(data)); err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("insert document %s/%s: id duplicado: %w", collection, id, err)
		}
		if isInvalidJSON(err) {
			return "", domain.ErrInvalidInput
		}
		return "", fmt.Errorf("insert document: %w", err)
	}
	return id, nil
}

// Update reemplaza los datos; domain.ErrNotFound si no existe.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, data json.RawMessage) error {
	if !repository.ValidCollection(collection) || !json.Valid(data) {
		return domain.ErrInvalidInput
	}
	query := `
		UPDATE documents SET data = $3::jsonb, updated_at = now()
		WHERE collection = $1 AND id = $2`
	tag, err := s.q.Exec(ctx, query, collection, id, string(data))
	if err != nil {
		if isInvalidJSON(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el documento; no es error si no existe.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`
	if _, err := s.q.Exec(ctx, query, collection, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

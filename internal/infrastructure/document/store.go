package document

import (
	"context"
	"fmt"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
)

// getDecoded lee y decodifica un documento; (false, nil) si no existe.
func getDecoded(ctx context.Context, store repository.DocumentStore, sch schema, collection, id string, dst any) (bool, error) {
	if !repository.ValidID(id) {
		return false, nil
	}
	doc, err := store.Get(ctx, collection, id)
	if err != nil {
		return false, fmt.Errorf("get %s: %w", sch.name, err)
	}
	if doc == nil {
		return false, nil
	}
	if err := sch.decode(doc.Data, dst); err != nil {
		return false, fmt.Errorf("decode %s %s: %w", sch.name, id, err)
	}
	return true, nil
}

// listDecoded decodifica todos los documentos de la colección y los entrega a collect.
// Un documento que no pasa la migración o la validación hace fallar la lectura completa.
func listDecoded[R any](ctx context.Context, store repository.DocumentStore, sch schema, collection string, collect func(id string, rec R)) error {
	docs, err := store.List(ctx, collection)
	if err != nil {
		return fmt.Errorf("list %s: %w", sch.name, err)
	}
	for _, doc := range docs {
		var rec R
		if err := sch.decode(doc.Data, &rec); err != nil {
			return fmt.Errorf("decode %s %s: %w", sch.name, doc.ID, err)
		}
		collect(doc.ID, rec)
	}
	return nil
}

func create(ctx context.Context, store repository.DocumentStore, sch schema, collection string, rec any) (string, error) {
	data, err := sch.encode(rec)
	if err != nil {
		return "", err
	}
	id, err := store.Create(ctx, collection, data)
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", sch.name, err)
	}
	return id, nil
}

func update(ctx context.Context, store repository.DocumentStore, sch schema, collection, id string, rec any) error {
	if !repository.ValidID(id) {
		return domain.ErrNotFound
	}
	data, err := sch.encode(rec)
	if err != nil {
		return err
	}
	if err := store.Update(ctx, collection, id, data); err != nil {
		return fmt.Errorf("update %s: %w", sch.name, err)
	}
	return nil
}

func remove(ctx context.Context, store repository.DocumentStore, sch schema, collection, id string) error {
	if !repository.ValidID(id) {
		return nil
	}
	if err := store.Delete(ctx, collection, id); err != nil {
		return fmt.Errorf("delete %s: %w", sch.name, err)
	}
	return nil
}

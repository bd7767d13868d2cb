// Package document implementa los repositorios tipados sobre el DocumentStore.
// Cada entidad se persiste como JSON con un campo schemaVersion; al leer se aplica
// la cadena de migraciones hasta la versión actual y se valida el resultado.
package document

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/validate"
)

const schemaVersionField = "schemaVersion"

// upgradeFunc transforma un documento de la versión v a la v+1 (in place).
type upgradeFunc func(doc map[string]any)

// schema describe la forma persistida de una entidad.
type schema struct {
	name    string
	current int
	// upgrades[v] lleva de v a v+1. Los documentos sin schemaVersion se tratan como v1.
	upgrades map[int]upgradeFunc
}

var structValidator = validate.New()

// upgrade aplica las migraciones pendientes y devuelve el JSON en la versión actual.
func (s schema) upgrade(raw json.RawMessage) (json.RawMessage, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w: json inválido: %v", s.name, domain.ErrCorruptDocument, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%s: documento vacío: %w", s.name, domain.ErrCorruptDocument)
	}
	version := 1
	if v, ok := doc[schemaVersionField]; ok {
		n, err := cast.ToIntE(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%s: schemaVersion %v: %w", s.name, v, domain.ErrCorruptDocument)
		}
		version = n
	}
	if version > s.current {
		return nil, fmt.Errorf("%s v%d (actual v%d): %w", s.name, version, s.current, domain.ErrSchemaVersion)
	}
	if version == s.current {
		return raw, nil
	}
	for v := version; v < s.current; v++ {
		if up, ok := s.upgrades[v]; ok {
			up(doc)
		}
	}
	doc[schemaVersionField] = s.current
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: re-serializar: %w", s.name, err)
	}
	return out, nil
}

// decode migra raw, lo deserializa en dst (los campos desconocidos se descartan) y valida.
// Los fallos de lectura envuelven domain.ErrCorruptDocument, nunca ErrInvalidInput.
func (s schema) decode(raw json.RawMessage, dst any) error {
	up, err := s.upgrade(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(up, dst); err != nil {
		return fmt.Errorf("%s: %w: %v", s.name, domain.ErrCorruptDocument, err)
	}
	if err := structValidator.Struct(dst); err != nil {
		return fmt.Errorf("%s: %w: %s", s.name, domain.ErrCorruptDocument, validate.Message(err))
	}
	return nil
}

// encode valida rec y lo serializa. rec debe tener su SchemaVersion ya fijado.
func (s schema) encode(rec any) (json.RawMessage, error) {
	if err := structValidator.Struct(rec); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", s.name, domain.ErrInvalidInput, validate.Message(err))
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("%s: serializar: %w", s.name, err)
	}
	return b, nil
}

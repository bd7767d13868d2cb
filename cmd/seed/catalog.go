package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
)

// Columnas esperadas del catálogo heredado (separador ';', cabecera en la primera línea):
// name;reference;family;price;min_stock;initial_stock
var catalogColumns = []string{"name", "reference", "family", "price", "min_stock", "initial_stock"}

// charsetReader envuelve r con el decodificador del charset indicado; vacío o utf-8 = sin cambios.
func charsetReader(charset string, r io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.ReplaceAll(charset, "_", "-")) {
	case "", "utf-8", "utf8":
		return r, nil
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado: %q", charset)
	}
}

// readCatalog convierte el CSV en peticiones de alta. Los precios aceptan coma decimal ("12,50").
// min_stock e initial_stock pasan tal cual: el caso de uso los normaliza.
func readCatalog(r io.Reader, charset string) ([]dto.CreateProductRequest, error) {
	dec, err := charsetReader(charset, r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dec)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := idx["name"]; !ok {
		return nil, fmt.Errorf("falta la columna name (esperadas: %s)", strings.Join(catalogColumns, ";"))
	}
	field := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var out []dto.CreateProductRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		name := field(rec, "name")
		if name == "" {
			continue
		}
		price := decimal.Zero
		if raw := field(rec, "price"); raw != "" {
			if price, err = decimal.NewFromString(strings.ReplaceAll(raw, ",", ".")); err != nil {
				return nil, fmt.Errorf("línea %d: precio %q: %w", line, raw, err)
			}
		}
		out = append(out, dto.CreateProductRequest{
			Name:         name,
			Reference:    field(rec, "reference"),
			Family:       field(rec, "family"),
			Price:        price,
			MinStock:     field(rec, "min_stock"),
			InitialStock: field(rec, "initial_stock"),
		})
	}
	return out, nil
}

package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"
)

// Document documento crudo del almacén: ID + datos JSON.
type Document struct {
	ID        string
	Data      json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentStore es el contrato genérico del almacén documental remoto.
// Las colecciones son rutas anidadas ("companies/{c}/products/{p}/stockLocations").
//
//   - Get devuelve (nil, nil) si el documento no existe.
//   - Update reemplaza los datos completos; devuelve domain.ErrNotFound si no existe.
//   - Delete de un documento inexistente no es error.
//
// No hay transacciones: cada llamada es un viaje independiente (last write wins).
type DocumentStore interface {
	List(ctx context.Context, collection string) ([]Document, error)
	Get(ctx context.Context, collection, id string) (*Document, error)
	Create(ctx context.Context, collection string, data json.RawMessage) (string, error)
	Update(ctx context.Context, collection, id string, data json.RawMessage) error
	Delete(ctx context.Context, collection, id string) error
}

// Rutas de colecciones. El aislamiento entre empresas es estructural (prefijo de ruta).

func CompanyPath(companyID string) string { return "companies/" + companyID }

func ProductsPath(companyID string) string { return CompanyPath(companyID) + "/products" }

func StockLocationsPath(companyID, productID string) string {
	return ProductsPath(companyID) + "/" + productID + "/stockLocations"
}

func StockMovementsPath(companyID, productID string) string {
	return ProductsPath(companyID) + "/" + productID + "/stockMovements"
}

func SupplierPricesPath(companyID, productID string) string {
	return ProductsPath(companyID) + "/" + productID + "/supplierPrices"
}

func SuppliersPath(companyID string) string { return CompanyPath(companyID) + "/suppliers" }

func ClientsPath(companyID string) string { return CompanyPath(companyID) + "/clients" }

func QuotationsPath(companyID string) string { return CompanyPath(companyID) + "/quotations" }

// ValidCollection indica si path es una ruta de colección bien formada:
// segmentos no vacíos y en número impar (colección / doc / colección ...).
func ValidCollection(path string) bool {
	if path == "" {
		return false
	}
	parts := strings.Split(path, "/")
	if len(parts)%2 == 0 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}

// ValidID indica si id puede usarse como segmento de ruta.
func ValidID(id string) bool {
	return id != "" && !strings.Contains(id, "/")
}

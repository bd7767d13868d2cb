package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo de una empresa.
// El stock NO vive en el producto: se calcula sumando sus StockLocation.
type Product struct {
	ID         string
	CompanyID  string
	Name       string
	Reference  string // código interno o referencia del fabricante
	Family     string // agrupación libre para valorización; vacío = sin familia
	Type       string
	Unit       string // unidad de medida (un, kg, m, ...)
	Price      decimal.Decimal
	MinStock   int // umbral de stock mínimo; 0 = sin alerta
	SupplierID string
	ExpiresAt  *time.Time // caducidad opcional del lote principal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

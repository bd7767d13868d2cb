package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// MinStock e InitialStock aceptan número o texto; se normalizan a enteros >= 0.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Reference    string          `json:"reference" validate:"max=100"`
	Family       string          `json:"family" validate:"max=100"`
	Type         string          `json:"type"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	MinStock     any             `json:"min_stock" swaggertype:"integer"`
	SupplierID   string          `json:"supplier_id"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
	InitialStock any             `json:"initial_stock" swaggertype:"integer"`
}

// UpdateProductRequest actualización parcial de campos de catálogo (nunca el stock).
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Reference  *string          `json:"reference"`
	Family     *string          `json:"family"`
	Type       *string          `json:"type"`
	Unit       *string          `json:"unit"`
	Price      *decimal.Decimal `json:"price"`
	MinStock   any              `json:"min_stock" swaggertype:"integer"`
	SupplierID *string          `json:"supplier_id"`
	ExpiresAt  *time.Time       `json:"expires_at"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	Name       string          `json:"name"`
	Reference  string          `json:"reference"`
	Family     string          `json:"family"`
	Type       string          `json:"type"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
	MinStock   int             `json:"min_stock"`
	SupplierID string          `json:"supplier_id,omitempty"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos con su resumen de stock.
type ProductListResponse struct {
	Items []ProductStockSummary `json:"items"`
}

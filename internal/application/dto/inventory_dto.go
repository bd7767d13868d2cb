package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddLocationRequest body para POST /api/products/:id/locations.
// Quantity acepta número o texto ("12abc" -> 12, "abc" -> 0, -4 -> 0, 3.9 -> 3).
type AddLocationRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Quantity any    `json:"quantity" swaggertype:"integer"`
	IsMain   bool   `json:"is_main"`
}

// UpdateLocationRequest reemplazo completo de los campos editables; is_main no se modifica.
type UpdateLocationRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Quantity any    `json:"quantity" swaggertype:"integer"`
}

// LocationResponse una ubicación de stock.
type LocationResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	IsMain    bool   `json:"is_main"`
}

// LocationListResponse ubicaciones de un producto más su total.
type LocationListResponse struct {
	Items      []LocationResponse `json:"items"`
	TotalStock int                `json:"total_stock"`
}

// ProductStockSummary producto + ubicaciones + agregados calculados en cada lectura.
type ProductStockSummary struct {
	Product      ProductResponse    `json:"product"`
	Locations    []LocationResponse `json:"locations"`
	TotalStock   int                `json:"total_stock"`
	Status       string             `json:"status"` // out | low | in
	Value        decimal.Decimal    `json:"value"`
	MainLocation *LocationResponse  `json:"main_location,omitempty"`
}

// FamilyValuationResponse valor del inventario de una familia.
type FamilyValuationResponse struct {
	Family   string          `json:"family"`
	Products int             `json:"products"`
	Units    int             `json:"units"`
	Value    decimal.Decimal `json:"value"`
}

// PortfolioResponse valoración total del inventario de la empresa.
type PortfolioResponse struct {
	Products   int                       `json:"products"`
	Units      int                       `json:"units"`
	TotalValue decimal.Decimal           `json:"total_value"`
	LowStock   int                       `json:"low_stock"`
	OutOfStock int                       `json:"out_of_stock"`
	Families   []FamilyValuationResponse `json:"families"`
}

// RecordMovementRequest body para POST /api/products/:id/movements.
// Solo anota el historial; no modifica las ubicaciones.
type RecordMovementRequest struct {
	Type     string `json:"type" validate:"required,oneof=entry exit transfer adjustment"`
	Quantity int    `json:"quantity" validate:"gt=0"`
	From     string `json:"from"`
	To       string `json:"to"`
	Notes    string `json:"notes" validate:"max=500"`
}

// MovementResponse un movimiento del historial.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int       `json:"quantity"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor,omitempty"`
	Notes     string    `json:"notes,omitempty"`
}

// MovementListResponse historial completo, más reciente primero.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
}

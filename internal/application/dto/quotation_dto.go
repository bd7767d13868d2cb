package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationItemRequest línea de cotización. Si description va vacía se usa el nombre del producto.
type QuotationItemRequest struct {
	ProductID   string           `json:"product_id"`
	Description string           `json:"description"`
	Quantity    int              `json:"quantity" validate:"gte=1"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal  `json:"tax_rate"`
}

// CreateQuotationRequest entrada para crear una cotización.
type CreateQuotationRequest struct {
	ClientID   string                 `json:"client_id" validate:"required"`
	Items      []QuotationItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes      string                 `json:"notes"`
	ValidUntil *time.Time             `json:"valid_until"`
}

// UpdateQuotationStatusRequest cambio de estado.
type UpdateQuotationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft sent accepted rejected"`
}

// QuotationItemResponse línea con importes calculados.
type QuotationItemResponse struct {
	ProductID   string          `json:"product_id,omitempty"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// QuotationResponse cotización con totales derivados.
type QuotationResponse struct {
	ID         string                  `json:"id"`
	Number     string                  `json:"number"`
	ClientID   string                  `json:"client_id"`
	ClientName string                  `json:"client_name,omitempty"`
	Items      []QuotationItemResponse `json:"items"`
	Status     string                  `json:"status"`
	Notes      string                  `json:"notes,omitempty"`
	ValidUntil *time.Time              `json:"valid_until,omitempty"`
	Subtotal   decimal.Decimal         `json:"subtotal"`
	Tax        decimal.Decimal         `json:"tax"`
	Total      decimal.Decimal         `json:"total"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	CompanyName  string `json:"company_name" validate:"required,max=200"`
	ContactName  string `json:"contact_name"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	TaxID        string `json:"tax_id"`
	Address      string `json:"address"`
	PaymentTerms string `json:"payment_terms"`
	DeliveryTime string `json:"delivery_time"`
	Status       string `json:"status" validate:"omitempty,oneof=active inactive"`
	Notes        string `json:"notes"`
}

// UpdateSupplierRequest actualización parcial de un proveedor.
type UpdateSupplierRequest struct {
	CompanyName  *string `json:"company_name" validate:"omitempty,min=1,max=200"`
	ContactName  *string `json:"contact_name"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Phone        *string `json:"phone"`
	TaxID        *string `json:"tax_id"`
	Address      *string `json:"address"`
	PaymentTerms *string `json:"payment_terms"`
	DeliveryTime *string `json:"delivery_time"`
	Status       *string `json:"status" validate:"omitempty,oneof=active inactive"`
	Notes        *string `json:"notes"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	CompanyName  string    `json:"company_name"`
	ContactName  string    `json:"contact_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	TaxID        string    `json:"tax_id"`
	Address      string    `json:"address"`
	PaymentTerms string    `json:"payment_terms"`
	DeliveryTime string    `json:"delivery_time"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SupplierPriceRequest alta o reemplazo de un precio de compra.
type SupplierPriceRequest struct {
	SupplierID    string          `json:"supplier_id" validate:"required"`
	SupplierRef   string          `json:"supplier_ref"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Currency      string          `json:"currency" validate:"omitempty,len=3"`
	IsPreferred   bool            `json:"is_preferred"`
}

// SupplierPriceResponse precio de compra de un producto con un proveedor.
type SupplierPriceResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	SupplierID    string          `json:"supplier_id"`
	SupplierRef   string          `json:"supplier_ref"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Currency      string          `json:"currency"`
	IsPreferred   bool            `json:"is_preferred"`
}

// SupplierPriceListResponse precios del producto y el preferido a mostrar (si hay).
type SupplierPriceListResponse struct {
	Items     []SupplierPriceResponse `json:"items"`
	Preferred *SupplierPriceResponse  `json:"preferred,omitempty"`
}

// ClientRequest alta o actualización completa de un cliente.
type ClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	TaxID   string `json:"tax_id"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	TaxID     string    `json:"tax_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

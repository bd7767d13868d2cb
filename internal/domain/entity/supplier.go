package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de proveedor.
const (
	SupplierStatusActive   = "active"
	SupplierStatusInactive = "inactive"
)

// Supplier representa un proveedor de la empresa.
type Supplier struct {
	ID           string
	CompanyID    string
	CompanyName  string
	ContactName  string
	Email        string
	Phone        string
	TaxID        string
	Address      string
	PaymentTerms string
	DeliveryTime string
	Status       string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SupplierPrice es el precio de compra de un producto con un proveedor concreto.
// Se espera un único IsPreferred por producto, pero no se impone.
type SupplierPrice struct {
	ID            string
	ProductID     string
	SupplierID    string
	SupplierRef   string
	PurchasePrice decimal.Decimal
	Currency      string
	IsPreferred   bool
}

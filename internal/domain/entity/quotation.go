package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cotización.
const (
	QuotationStatusDraft    = "draft"
	QuotationStatusSent     = "sent"
	QuotationStatusAccepted = "accepted"
	QuotationStatusRejected = "rejected"
)

// Quotation representa una cotización enviada a un cliente.
type Quotation struct {
	ID         string
	CompanyID  string
	Number     string
	ClientID   string
	Items      []QuotationItem
	Status     string
	Notes      string
	ValidUntil *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// QuotationItem línea de una cotización. TaxRate en porcentaje (ej. 23 = 23%).
type QuotationItem struct {
	ProductID   string
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
}

// Subtotal devuelve Quantity * UnitPrice.
func (i QuotationItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Tax devuelve el impuesto de la línea.
func (i QuotationItem) Tax() decimal.Decimal {
	return i.Subtotal().Mul(i.TaxRate).Div(decimal.NewFromInt(100))
}

// Totals devuelve subtotal neto, impuestos y total de la cotización.
func (q *Quotation) Totals() (net, tax, total decimal.Decimal) {
	net, tax = decimal.Zero, decimal.Zero
	for _, it := range q.Items {
		net = net.Add(it.Subtotal())
		tax = tax.Add(it.Tax())
	}
	return net.Round(2), tax.Round(2), net.Add(tax).Round(2)
}

// IsValidQuotationStatus indica si s es un estado conocido.
func IsValidQuotationStatus(s string) bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted, QuotationStatusRejected:
		return true
	}
	return false
}

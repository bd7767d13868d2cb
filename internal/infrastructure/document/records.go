package document

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/stock"
)

// Versiones actuales de cada documento.
var (
	productSchema = schema{name: "product", current: 2, upgrades: map[int]upgradeFunc{
		// v1 guardaba minStock como texto o decimal y price podía quedar vacío.
		1: func(doc map[string]any) {
			if v, ok := doc["minStock"]; ok {
				doc["minStock"] = stock.CoerceQuantity(v)
			}
			if p, ok := doc["price"].(string); ok && p == "" {
				delete(doc, "price")
			}
		},
	}}
	locationSchema = schema{name: "stockLocation", current: 2, upgrades: map[int]upgradeFunc{
		// v1 aceptaba quantity como texto libre y no tenía type.
		1: func(doc map[string]any) {
			doc["quantity"] = stock.CoerceQuantity(doc["quantity"])
			if t, _ := doc["type"].(string); t == "" {
				doc["type"] = entity.LocationTypeWarehouse
			}
		},
	}}
	movementSchema      = schema{name: "stockMovement", current: 1}
	supplierSchema      = schema{name: "supplier", current: 1}
	supplierPriceSchema = schema{name: "supplierPrice", current: 1}
	clientSchema        = schema{name: "client", current: 1}
	quotationSchema     = schema{name: "quotation", current: 1}
)

type productRecord struct {
	SchemaVersion int             `json:"schemaVersion"`
	Name          string          `json:"name" validate:"required"`
	Reference     string          `json:"reference,omitempty"`
	Family        string          `json:"family,omitempty"`
	Type          string          `json:"type,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	Price         decimal.Decimal `json:"price"`
	MinStock      int             `json:"minStock" validate:"gte=0"`
	SupplierID    string          `json:"supplierId,omitempty"`
	ExpiresAt     *time.Time      `json:"expiresAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

func toProductRecord(p *entity.Product) productRecord {
	return productRecord{
		SchemaVersion: productSchema.current,
		Name:          p.Name,
		Reference:     p.Reference,
		Family:        p.Family,
		Type:          p.Type,
		Unit:          p.Unit,
		Price:         p.Price,
		MinStock:      p.MinStock,
		SupplierID:    p.SupplierID,
		ExpiresAt:     p.ExpiresAt,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (r productRecord) entity(companyID, id string) *entity.Product {
	return &entity.Product{
		ID:         id,
		CompanyID:  companyID,
		Name:       r.Name,
		Reference:  r.Reference,
		Family:     r.Family,
		Type:       r.Type,
		Unit:       r.Unit,
		Price:      r.Price,
		MinStock:   r.MinStock,
		SupplierID: r.SupplierID,
		ExpiresAt:  r.ExpiresAt,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type locationRecord struct {
	SchemaVersion int    `json:"schemaVersion"`
	Name          string `json:"name" validate:"required"`
	Type          string `json:"type" validate:"oneof=warehouse customer transit"`
	Quantity      int    `json:"quantity" validate:"gte=0"`
	IsMain        bool   `json:"isMain"`
}

func toLocationRecord(l *entity.StockLocation) locationRecord {
	return locationRecord{
		SchemaVersion: locationSchema.current,
		Name:          l.Name,
		Type:          l.Type,
		Quantity:      l.Quantity,
		IsMain:        l.IsMain,
	}
}

func (r locationRecord) entity(productID, id string) entity.StockLocation {
	return entity.StockLocation{
		ID:        id,
		ProductID: productID,
		Name:      r.Name,
		Type:      r.Type,
		Quantity:  r.Quantity,
		IsMain:    r.IsMain,
	}
}

type movementRecord struct {
	SchemaVersion int       `json:"schemaVersion"`
	Type          string    `json:"type" validate:"oneof=entry exit transfer adjustment"`
	Quantity      int       `json:"quantity" validate:"gte=0"`
	From          string    `json:"from,omitempty"`
	To            string    `json:"to,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	Actor         string    `json:"actor,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

func toMovementRecord(m *entity.StockMovement) movementRecord {
	return movementRecord{
		SchemaVersion: movementSchema.current,
		Type:          m.Type,
		Quantity:      m.Quantity,
		From:          m.From,
		To:            m.To,
		Timestamp:     m.Timestamp,
		Actor:         m.Actor,
		Notes:         m.Notes,
	}
}

func (r movementRecord) entity(productID, id string) entity.StockMovement {
	return entity.StockMovement{
		ID:        id,
		ProductID: productID,
		Type:      r.Type,
		Quantity:  r.Quantity,
		From:      r.From,
		To:        r.To,
		Timestamp: r.Timestamp,
		Actor:     r.Actor,
		Notes:     r.Notes,
	}
}

type supplierRecord struct {
	SchemaVersion int       `json:"schemaVersion"`
	CompanyName   string    `json:"companyName" validate:"required"`
	ContactName   string    `json:"contactName,omitempty"`
	Email         string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string    `json:"phone,omitempty"`
	TaxID         string    `json:"taxId,omitempty"`
	Address       string    `json:"address,omitempty"`
	PaymentTerms  string    `json:"paymentTerms,omitempty"`
	DeliveryTime  string    `json:"deliveryTime,omitempty"`
	Status        string    `json:"status" validate:"oneof=active inactive"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toSupplierRecord(s *entity.Supplier) supplierRecord {
	return supplierRecord{
		SchemaVersion: supplierSchema.current,
		CompanyName:   s.CompanyName,
		ContactName:   s.ContactName,
		Email:         s.Email,
		Phone:         s.Phone,
		TaxID:         s.TaxID,
		Address:       s.Address,
		PaymentTerms:  s.PaymentTerms,
		DeliveryTime:  s.DeliveryTime,
		Status:        s.Status,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func (r supplierRecord) entity(companyID, id string) *entity.Supplier {
	return &entity.Supplier{
		ID:           id,
		CompanyID:    companyID,
		CompanyName:  r.CompanyName,
		ContactName:  r.ContactName,
		Email:        r.Email,
		Phone:        r.Phone,
		TaxID:        r.TaxID,
		Address:      r.Address,
		PaymentTerms: r.PaymentTerms,
		DeliveryTime: r.DeliveryTime,
		Status:       r.Status,
		Notes:        r.Notes,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type supplierPriceRecord struct {
	SchemaVersion int             `json:"schemaVersion"`
	SupplierID    string          `json:"supplierId" validate:"required"`
	SupplierRef   string          `json:"supplierRef,omitempty"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	Currency      string          `json:"currency,omitempty"`
	IsPreferred   bool            `json:"isPreferred"`
}

func toSupplierPriceRecord(p *entity.SupplierPrice) supplierPriceRecord {
	return supplierPriceRecord{
		SchemaVersion: supplierPriceSchema.current,
		SupplierID:    p.SupplierID,
		SupplierRef:   p.SupplierRef,
		PurchasePrice: p.PurchasePrice,
		Currency:      p.Currency,
		IsPreferred:   p.IsPreferred,
	}
}

func (r supplierPriceRecord) entity(productID, id string) entity.SupplierPrice {
	return entity.SupplierPrice{
		ID:            id,
		ProductID:     productID,
		SupplierID:    r.SupplierID,
		SupplierRef:   r.SupplierRef,
		PurchasePrice: r.PurchasePrice,
		Currency:      r.Currency,
		IsPreferred:   r.IsPreferred,
	}
}

type clientRecord struct {
	SchemaVersion int       `json:"schemaVersion"`
	Name          string    `json:"name" validate:"required"`
	Email         string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	TaxID         string    `json:"taxId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toClientRecord(c *entity.Client) clientRecord {
	return clientRecord{
		SchemaVersion: clientSchema.current,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		TaxID:         c.TaxID,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func (r clientRecord) entity(companyID, id string) *entity.Client {
	return &entity.Client{
		ID:        id,
		CompanyID: companyID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		TaxID:     r.TaxID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type quotationItemRecord struct {
	ProductID   string          `json:"productId,omitempty"`
	Description string          `json:"description" validate:"required"`
	Quantity    int             `json:"quantity" validate:"gte=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"taxRate"`
}

type quotationRecord struct {
	SchemaVersion int                   `json:"schemaVersion"`
	Number        string                `json:"number" validate:"required"`
	ClientID      string                `json:"clientId" validate:"required"`
	Items         []quotationItemRecord `json:"items" validate:"min=1,dive"`
	Status        string                `json:"status" validate:"oneof=draft sent accepted rejected"`
	Notes         string                `json:"notes,omitempty"`
	ValidUntil    *time.Time            `json:"validUntil,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

func toQuotationRecord(q *entity.Quotation) quotationRecord {
	items := make([]quotationItemRecord, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, quotationItemRecord{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
		})
	}
	return quotationRecord{
		SchemaVersion: quotationSchema.current,
		Number:        q.Number,
		ClientID:      q.ClientID,
		Items:         items,
		Status:        q.Status,
		Notes:         q.Notes,
		ValidUntil:    q.ValidUntil,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}

func (r quotationRecord) entity(companyID, id string) *entity.Quotation {
	items := make([]entity.QuotationItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, entity.QuotationItem{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
		})
	}
	return &entity.Quotation{
		ID:         id,
		CompanyID:  companyID,
		Number:     r.Number,
		ClientID:   r.ClientID,
		Items:      items,
		Status:     r.Status,
		Notes:      r.Notes,
		ValidUntil: r.ValidUntil,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

package repository

import (
	"context"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Supplier, error)
	Delete(ctx context.Context, companyID, id string) error
}

// SupplierPriceRepository precios de compra por producto y proveedor.
type SupplierPriceRepository interface {
	Create(ctx context.Context, companyID string, price *entity.SupplierPrice) error
	GetByID(ctx context.Context, companyID, productID, id string) (*entity.SupplierPrice, error)
	Update(ctx context.Context, companyID string, price *entity.SupplierPrice) error
	ListByProduct(ctx context.Context, companyID, productID string) ([]entity.SupplierPrice, error)
	Delete(ctx context.Context, companyID, productID, id string) error
}

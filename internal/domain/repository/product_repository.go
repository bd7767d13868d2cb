package repository

import (
	"context"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create persiste el producto y asigna product.ID.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Product, error)
	Delete(ctx context.Context, companyID, id string) error
}

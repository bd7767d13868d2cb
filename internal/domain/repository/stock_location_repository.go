package repository

import (
	"context"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
)

// StockLocationRepository puerto del libro de ubicaciones (hijas de Product).
type StockLocationRepository interface {
	// ListByProduct devuelve todas las ubicaciones; el orden no es significativo.
	ListByProduct(ctx context.Context, companyID, productID string) ([]entity.StockLocation, error)
	GetByID(ctx context.Context, companyID, productID, id string) (*entity.StockLocation, error)
	// Create persiste la ubicación y asigna location.ID.
	Create(ctx context.Context, companyID string, location *entity.StockLocation) error
	Update(ctx context.Context, companyID string, location *entity.StockLocation) error
	Delete(ctx context.Context, companyID, productID, id string) error
}

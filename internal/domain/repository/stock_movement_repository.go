package repository

import (
	"context"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
)

// StockMovementRepository puerto del historial de movimientos (solo anexar).
type StockMovementRepository interface {
	Create(ctx context.Context, companyID string, movement *entity.StockMovement) error
	ListByProduct(ctx context.Context, companyID, productID string) ([]entity.StockMovement, error)
	// Delete solo se usa al borrar el producto padre.
	Delete(ctx context.Context, companyID, productID, id string) error
}

package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

// MovementLogUseCase historial de movimientos (solo lectura y anexado).
// Se mantiene aparte del libro de ubicaciones: registrar un movimiento no cambia cantidades.
type MovementLogUseCase struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewMovementLogUseCase construye el caso de uso.
func NewMovementLogUseCase(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	log *logger.Logger,
) *MovementLogUseCase {
	return &MovementLogUseCase{products: products, movements: movements, log: log, now: time.Now}
}

// ListMovements devuelve todos los movimientos del producto, opcionalmente filtrados por tipo,
// del más reciente al más antiguo. Sin paginación.
func (uc *MovementLogUseCase) ListMovements(ctx context.Context, companyID, productID, filterType string) (*dto.MovementListResponse, error) {
	if filterType != "" && !entity.IsValidMovementType(filterType) {
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, filterType)
	}
	list, err := uc.movements.ListByProduct(ctx, companyID, productID)
	if err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("product_id", productID).Msg("listar movimientos")
		return nil, err
	}
	filtered := make([]entity.StockMovement, 0, len(list))
	for _, m := range list {
		if filterType == "" || m.Type == filterType {
			filtered = append(filtered, m)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})
	items := make([]dto.MovementResponse, 0, len(filtered))
	for _, m := range filtered {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items}, nil
}

// RecordMovement anexa un movimiento al historial. Actor = usuario autenticado.
func (uc *MovementLogUseCase) RecordMovement(ctx context.Context, companyID, productID, actor string, in dto.RecordMovementRequest) (*dto.MovementResponse, error) {
	if !entity.IsValidMovementType(in.Type) {
		return nil, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, in.Type)
	}
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidInput)
	}
	if in.Type == entity.MovementTypeTransfer && (in.From == "" || in.To == "") {
		return nil, fmt.Errorf("%w: una transferencia requiere origen y destino", domain.ErrInvalidInput)
	}
	p, err := uc.products.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	m := &entity.StockMovement{
		ProductID: productID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		From:      in.From,
		To:        in.To,
		Timestamp: uc.now().UTC(),
		Actor:     actor,
		Notes:     in.Notes,
	}
	if err := uc.movements.Create(ctx, companyID, m); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("product_id", productID).Msg("registrar movimiento")
		return nil, err
	}
	out := toMovementResponse(*m)
	return &out, nil
}

func toMovementResponse(m entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		From:      m.From,
		To:        m.To,
		Timestamp: m.Timestamp,
		Actor:     m.Actor,
		Notes:     m.Notes,
	}
}

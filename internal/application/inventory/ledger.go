package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/stock"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

// LedgerUseCase libro de ubicaciones: dónde está el stock de cada producto.
// Ninguna operación escribe en el historial de movimientos.
type LedgerUseCase struct {
	products  repository.ProductRepository
	locations repository.StockLocationRepository
	log       *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	products repository.ProductRepository,
	locations repository.StockLocationRepository,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{products: products, locations: locations, log: log}
}

// ListLocations devuelve las ubicaciones del producto y su total.
// Producto inexistente (o borrado en paralelo) = lista vacía, no error.
func (uc *LedgerUseCase) ListLocations(ctx context.Context, companyID, productID string) (*dto.LocationListResponse, error) {
	locs, err := uc.locations.ListByProduct(ctx, companyID, productID)
	if err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("product_id", productID).Msg("listar ubicaciones")
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(locs))
	for _, l := range locs {
		items = append(items, ToLocationResponse(l))
	}
	return &dto.LocationListResponse{Items: items, TotalStock: stock.TotalStock(locs)}, nil
}

// AddLocation crea una ubicación. La cantidad se normaliza a entero >= 0;
// no se comprueba unicidad de nombre ni de is_main.
func (uc *LedgerUseCase) AddLocation(ctx context.Context, companyID, productID string, in dto.AddLocationRequest) (*dto.LocationResponse, error) {
	name, locType, err := normalizeLocation(in.Name, in.Type)
	if err != nil {
		return nil, err
	}
	if err := uc.requireProduct(ctx, companyID, productID); err != nil {
		return nil, err
	}
	loc := &entity.StockLocation{
		ProductID: productID,
		Name:      name,
		Type:      locType,
		Quantity:  stock.CoerceQuantity(in.Quantity),
		IsMain:    in.IsMain,
	}
	if err := uc.locations.Create(ctx, companyID, loc); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("product_id", productID).Msg("crear ubicación")
		return nil, err
	}
	out := ToLocationResponse(*loc)
	return &out, nil
}

// UpdateLocation reemplaza nombre, tipo y cantidad. IsMain se conserva.
func (uc *LedgerUseCase) UpdateLocation(ctx context.Context, companyID, productID, locationID string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	name, locType, err := normalizeLocation(in.Name, in.Type)
	if err != nil {
		return nil, err
	}
	loc, err := uc.locations.GetByID(ctx, companyID, productID, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	loc.Name = name
	loc.Type = locType
	loc.Quantity = stock.CoerceQuantity(in.Quantity)
	if err := uc.locations.Update(ctx, companyID, loc); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("location_id", locationID).Msg("actualizar ubicación")
		return nil, err
	}
	out := ToLocationResponse(*loc)
	return &out, nil
}

// DeleteLocation elimina la ubicación. La cantidad que tuviera desaparece del total
// sin movimiento compensatorio; solo se deja constancia en el log.
func (uc *LedgerUseCase) DeleteLocation(ctx context.Context, companyID, productID, locationID string) error {
	loc, err := uc.locations.GetByID(ctx, companyID, productID, locationID)
	if err != nil {
		return err
	}
	if err := uc.locations.Delete(ctx, companyID, productID, locationID); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("location_id", locationID).Msg("eliminar ubicación")
		return err
	}
	if loc != nil && loc.Quantity > 0 {
		uc.log.Warn().
			Str("company_id", companyID).
			Str("product_id", productID).
			Str("location", loc.Name).
			Int("quantity", loc.Quantity).
			Msg("ubicación eliminada con stock")
	}
	return nil
}

func (uc *LedgerUseCase) requireProduct(ctx context.Context, companyID, productID string) error {
	p, err := uc.products.GetByID(ctx, companyID, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return nil
}

// normalizeLocation valida nombre y tipo; tipo vacío = warehouse.
func normalizeLocation(name, locType string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("%w: el nombre de la ubicación es obligatorio", domain.ErrInvalidInput)
	}
	locType = strings.ToLower(strings.TrimSpace(locType))
	if locType == "" {
		locType = entity.LocationTypeWarehouse
	}
	if !entity.IsValidLocationType(locType) {
		return "", "", fmt.Errorf("%w: tipo de ubicación %q", domain.ErrInvalidInput, locType)
	}
	return name, locType, nil
}

// ToLocationResponse convierte la entidad al DTO de salida.
func ToLocationResponse(l entity.StockLocation) dto.LocationResponse {
	return dto.LocationResponse{
		ID:        l.ID,
		ProductID: l.ProductID,
		Name:      l.Name,
		Type:      l.Type,
		Quantity:  l.Quantity,
		IsMain:    l.IsMain,
	}
}

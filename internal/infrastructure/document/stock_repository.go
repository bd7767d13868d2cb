package document

import (
	"context"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
)

var (
	_ repository.StockLocationRepository = (*StockLocationRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
)

// StockLocationRepo ubicaciones de stock: companies/{c}/products/{p}/stockLocations.
type StockLocationRepo struct {
	store repository.DocumentStore
}

// NewStockLocationRepository construye el repositorio de ubicaciones.
func NewStockLocationRepository(store repository.DocumentStore) *StockLocationRepo {
	return &StockLocationRepo{store: store}
}

func (r *StockLocationRepo) ListByProduct(ctx context.Context, companyID, productID string) ([]entity.StockLocation, error) {
	if !repository.ValidID(productID) {
		return nil, nil
	}
	var out []entity.StockLocation
	err := listDecoded(ctx, r.store, locationSchema, repository.StockLocationsPath(companyID, productID), func(id string, rec locationRecord) {
		out = append(out, rec.entity(productID, id))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StockLocationRepo) GetByID(ctx context.Context, companyID, productID, id string) (*entity.StockLocation, error) {
	if !repository.ValidID(productID) {
		return nil, nil
	}
	var rec locationRecord
	found, err := getDecoded(ctx, r.store, locationSchema, repository.StockLocationsPath(companyID, productID), id, &rec)
	if err != nil || !found {
		return nil, err
	}
	loc := rec.entity(productID, id)
	return &loc, nil
}

func (r *StockLocationRepo) Create(ctx context.Context, companyID string, location *entity.StockLocation) error {
	id, err := create(ctx, r.store, locationSchema, repository.StockLocationsPath(companyID, location.ProductID), toLocationRecord(location))
	if err != nil {
		return err
	}
	location.ID = id
	return nil
}

func (r *StockLocationRepo) Update(ctx context.Context, companyID string, location *entity.StockLocation) error {
	return update(ctx, r.store, locationSchema, repository.StockLocationsPath(companyID, location.ProductID), location.ID, toLocationRecord(location))
}

func (r *StockLocationRepo) Delete(ctx context.Context, companyID, productID, id string) error {
	return remove(ctx, r.store, locationSchema, repository.StockLocationsPath(companyID, productID), id)
}

// StockMovementRepo historial de movimientos: companies/{c}/products/{p}/stockMovements.
type StockMovementRepo struct {
	store repository.DocumentStore
}

// NewStockMovementRepository construye el repositorio de movimientos.
func NewStockMovementRepository(store repository.DocumentStore) *StockMovementRepo {
	return &StockMovementRepo{store: store}
}

func (r *StockMovementRepo) Create(ctx context.Context, companyID string, movement *entity.StockMovement) error {
	id, err := create(ctx, r.store, movementSchema, repository.StockMovementsPath(companyID, movement.ProductID), toMovementRecord(movement))
	if err != nil {
		return err
	}
	movement.ID = id
	return nil
}

func (r *StockMovementRepo) ListByProduct(ctx context.Context, companyID, productID string) ([]entity.StockMovement, error) {
	if !repository.ValidID(productID) {
		return nil, nil
	}
	var out []entity.StockMovement
	err := listDecoded(ctx, r.store, movementSchema, repository.StockMovementsPath(companyID, productID), func(id string, rec movementRecord) {
		out = append(out, rec.entity(productID, id))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StockMovementRepo) Delete(ctx context.Context, companyID, productID, id string) error {
	return remove(ctx, r.store, movementSchema, repository.StockMovementsPath(companyID, productID), id)
}

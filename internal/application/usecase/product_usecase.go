package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/inventory"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/stock"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

// ProductUseCase CRUD de productos. El stock no se edita aquí: vive en las ubicaciones.
type ProductUseCase struct {
	products      repository.ProductRepository
	locations     repository.StockLocationRepository
	prices        repository.SupplierPriceRepository
	movements     repository.StockMovementRepository
	defaultLocale string
	log           *logger.Logger
	now           func() time.Time
}

// NewProductUseCase construye el caso de uso. defaultLocale se usa si la petición no trae idioma.
func NewProductUseCase(
	products repository.ProductRepository,
	locations repository.StockLocationRepository,
	prices repository.SupplierPriceRepository,
	movements repository.StockMovementRepository,
	defaultLocale string,
	log *logger.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		products:      products,
		locations:     locations,
		prices:        prices,
		movements:     movements,
		defaultLocale: defaultLocale,
		log:           log,
		now:           time.Now,
	}
}

// Create crea el producto y, si initial_stock > 0, una única ubicación principal
// con el nombre de bodega localizado. Son dos escrituras independientes.
func (uc *ProductUseCase) Create(ctx context.Context, companyID, acceptLanguage string, in dto.CreateProductRequest) (*dto.ProductStockSummary, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	now := uc.now().UTC()
	p := &entity.Product{
		CompanyID:  companyID,
		Name:       name,
		Reference:  strings.TrimSpace(in.Reference),
		Family:     strings.TrimSpace(in.Family),
		Type:       in.Type,
		Unit:       in.Unit,
		Price:      in.Price,
		MinStock:   stock.CoerceQuantity(in.MinStock),
		SupplierID: in.SupplierID,
		ExpiresAt:  in.ExpiresAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.products.Create(ctx, p); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Msg("crear producto")
		return nil, err
	}

	locs := make([]entity.StockLocation, 0, 1)
	if initial := stock.CoerceQuantity(in.InitialStock); initial > 0 {
		loc := &entity.StockLocation{
			ProductID: p.ID,
			Name:      MainWarehouseName(acceptLanguage, uc.defaultLocale),
			Type:      entity.LocationTypeWarehouse,
			Quantity:  initial,
			IsMain:    true,
		}
		if err := uc.locations.Create(ctx, companyID, loc); err != nil {
			uc.log.Error().Err(err).Str("company_id", companyID).Str("product_id", p.ID).Msg("crear ubicación inicial")
			return nil, err
		}
		locs = append(locs, *loc)
	}
	out := inventory.ToSummary(stock.NewSnapshot(*p, locs))
	return &out, nil
}

// Update actualización parcial de los campos de catálogo.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
		}
		p.Name = name
	}
	if in.Reference != nil {
		p.Reference = strings.TrimSpace(*in.Reference)
	}
	if in.Family != nil {
		p.Family = strings.TrimSpace(*in.Family)
	}
	if in.Type != nil {
		p.Type = *in.Type
	}
	if in.Unit != nil {
		p.Unit = *in.Unit
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		p.Price = *in.Price
	}
	if in.MinStock != nil {
		p.MinStock = stock.CoerceQuantity(in.MinStock)
	}
	if in.SupplierID != nil {
		p.SupplierID = *in.SupplierID
	}
	if in.ExpiresAt != nil {
		p.ExpiresAt = in.ExpiresAt
	}
	p.UpdatedAt = uc.now().UTC()
	if err := uc.products.Update(ctx, p); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("product_id", id).Msg("actualizar producto")
		return nil, err
	}
	out := inventory.ToProductResponse(p)
	return &out, nil
}

// Delete borra ubicaciones, precios y movimientos uno a uno y después el producto.
// Si algo falla se detiene y queda un borrado parcial; no hay rollback.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	log := uc.log.WithFields(map[string]string{"company_id": companyID, "product_id": id})

	locs, err := uc.locations.ListByProduct(ctx, companyID, id)
	if err != nil {
		return err
	}
	for _, l := range locs {
		if err := uc.locations.Delete(ctx, companyID, id, l.ID); err != nil {
			log.Error().Err(err).Str("location_id", l.ID).Msg("borrado parcial: ubicación")
			return err
		}
	}

	prices, err := uc.prices.ListByProduct(ctx, companyID, id)
	if err != nil {
		return err
	}
	for _, sp := range prices {
		if err := uc.prices.Delete(ctx, companyID, id, sp.ID); err != nil {
			log.Error().Err(err).Str("price_id", sp.ID).Msg("borrado parcial: precio de proveedor")
			return err
		}
	}

	moves, err := uc.movements.ListByProduct(ctx, companyID, id)
	if err != nil {
		return err
	}
	for _, m := range moves {
		if err := uc.movements.Delete(ctx, companyID, id, m.ID); err != nil {
			log.Error().Err(err).Str("movement_id", m.ID).Msg("borrado parcial: movimiento")
			return err
		}
	}

	if err := uc.products.Delete(ctx, companyID, id); err != nil {
		log.Error().Err(err).Msg("borrado parcial: producto")
		return err
	}
	log.Info().Int("locations", len(locs)).Int("prices", len(prices)).Int("movements", len(moves)).Msg("producto eliminado")
	return nil
}

package inventory

import (
	"context"
	"time"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/stock"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

// StockQueryUseCase vistas calculadas: resúmenes por producto, valoración y notificaciones.
// Todo se recalcula desde el libro de ubicaciones en cada llamada.
type StockQueryUseCase struct {
	products     repository.ProductRepository
	locations    repository.StockLocationRepository
	expiryWindow time.Duration
	log          *logger.Logger
}

// NewStockQueryUseCase construye el caso de uso. expiryWindow define qué productos "caducan pronto".
func NewStockQueryUseCase(
	products repository.ProductRepository,
	locations repository.StockLocationRepository,
	expiryWindow time.Duration,
	log *logger.Logger,
) *StockQueryUseCase {
	return &StockQueryUseCase{products: products, locations: locations, expiryWindow: expiryWindow, log: log}
}

// Snapshots lee todos los productos de la empresa con sus ubicaciones.
// Una lectura por producto; el catálogo se asume pequeño.
func (uc *StockQueryUseCase) Snapshots(ctx context.Context, companyID string) ([]stock.Snapshot, error) {
	products, err := uc.products.ListByCompany(ctx, companyID)
	if err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Msg("listar productos")
		return nil, err
	}
	snaps := make([]stock.Snapshot, 0, len(products))
	for _, p := range products {
		locs, err := uc.locations.ListByProduct(ctx, companyID, p.ID)
		if err != nil {
			uc.log.Error().Err(err).Str("company_id", companyID).Str("product_id", p.ID).Msg("listar ubicaciones")
			return nil, err
		}
		snaps = append(snaps, stock.NewSnapshot(*p, locs))
	}
	return snaps, nil
}

// ProductSummary resumen de un producto; (nil, nil) si no existe.
func (uc *StockQueryUseCase) ProductSummary(ctx context.Context, companyID, productID string) (*dto.ProductStockSummary, error) {
	p, err := uc.products.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	locs, err := uc.locations.ListByProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	out := ToSummary(stock.NewSnapshot(*p, locs))
	return &out, nil
}

// ListSummaries lista los productos con su stock; family filtra por familia exacta si no es vacío.
func (uc *StockQueryUseCase) ListSummaries(ctx context.Context, companyID, family string) (*dto.ProductListResponse, error) {
	snaps, err := uc.Snapshots(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductStockSummary, 0, len(snaps))
	for _, s := range snaps {
		if family != "" && s.Product.Family != family {
			continue
		}
		items = append(items, ToSummary(s))
	}
	return &dto.ProductListResponse{Items: items}, nil
}

// Portfolio valoración total y por familia.
func (uc *StockQueryUseCase) Portfolio(ctx context.Context, companyID string) (*dto.PortfolioResponse, error) {
	snaps, err := uc.Snapshots(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := &dto.PortfolioResponse{
		Products:   len(snaps),
		TotalValue: stock.PortfolioValue(snaps),
		Families:   make([]dto.FamilyValuationResponse, 0),
	}
	for _, s := range snaps {
		out.Units += s.Total
		switch s.Status {
		case stock.StatusLow:
			out.LowStock++
		case stock.StatusOut:
			out.OutOfStock++
		}
	}
	for _, fv := range stock.ValuationByFamily(snaps) {
		out.Families = append(out.Families, dto.FamilyValuationResponse{
			Family: fv.Family, Products: fv.Products, Units: fv.Units, Value: fv.Value,
		})
	}
	return out, nil
}

// Notifications calcula en el momento los conjuntos de stock bajo y caducidad.
// No hay estado de leído: si la condición sigue, vuelve a aparecer.
func (uc *StockQueryUseCase) Notifications(ctx context.Context, companyID string, now time.Time) (*dto.NotificationsResponse, error) {
	snaps, err := uc.Snapshots(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := &dto.NotificationsResponse{
		LowStock:    make([]dto.LowStockNotification, 0),
		Expiring:    make([]dto.ExpiryNotification, 0),
		GeneratedAt: now,
	}
	for _, s := range stock.LowStock(snaps) {
		out.LowStock = append(out.LowStock, dto.LowStockNotification{
			ProductID:  s.Product.ID,
			Name:       s.Product.Name,
			TotalStock: s.Total,
			MinStock:   s.Product.MinStock,
			Status:     string(s.Status),
		})
	}
	for _, s := range stock.ExpiringWithin(snaps, now, uc.expiryWindow) {
		out.Expiring = append(out.Expiring, dto.ExpiryNotification{
			ProductID:  s.Product.ID,
			Name:       s.Product.Name,
			ExpiresAt:  *s.Product.ExpiresAt,
			Expired:    !s.Product.ExpiresAt.After(now),
			TotalStock: s.Total,
		})
	}
	return out, nil
}

// ToSummary convierte un snapshot en el DTO de resumen.
func ToSummary(s stock.Snapshot) dto.ProductStockSummary {
	locs := make([]dto.LocationResponse, 0, len(s.Locations))
	for _, l := range s.Locations {
		locs = append(locs, ToLocationResponse(l))
	}
	out := dto.ProductStockSummary{
		Product:    ToProductResponse(&s.Product),
		Locations:  locs,
		TotalStock: s.Total,
		Status:     string(s.Status),
		Value:      s.Value,
	}
	if main, ok := stock.MainLocation(s.Locations); ok {
		m := ToLocationResponse(main)
		out.MainLocation = &m
	}
	return out
}

// ToProductResponse convierte la entidad al DTO de salida.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:         p.ID,
		CompanyID:  p.CompanyID,
		Name:       p.Name,
		Reference:  p.Reference,
		Family:     p.Family,
		Type:       p.Type,
		Unit:       p.Unit,
		Price:      p.Price,
		MinStock:   p.MinStock,
		SupplierID: p.SupplierID,
		ExpiresAt:  p.ExpiresAt,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

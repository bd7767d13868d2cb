package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

const defaultCurrency = "EUR"

// SupplierUseCase proveedores y sus precios de compra por producto.
type SupplierUseCase struct {
	suppliers repository.SupplierRepository
	prices    repository.SupplierPriceRepository
	products  repository.ProductRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(
	suppliers repository.SupplierRepository,
	prices repository.SupplierPriceRepository,
	products repository.ProductRepository,
	log *logger.Logger,
) *SupplierUseCase {
	return &SupplierUseCase{suppliers: suppliers, prices: prices, products: products, log: log, now: time.Now}
}

// Create da de alta un proveedor; sin estado = active.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.CompanyName)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre del proveedor es obligatorio", domain.ErrInvalidInput)
	}
	status := in.Status
	if status == "" {
		status = entity.SupplierStatusActive
	}
	now := uc.now().UTC()
	s := &entity.Supplier{
		CompanyID:    companyID,
		CompanyName:  name,
		ContactName:  in.ContactName,
		Email:        strings.TrimSpace(in.Email),
		Phone:        in.Phone,
		TaxID:        in.TaxID,
		Address:      in.Address,
		PaymentTerms: in.PaymentTerms,
		DeliveryTime: in.DeliveryTime,
		Status:       status,
		Notes:        in.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.suppliers.Create(ctx, s); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Msg("crear proveedor")
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Get devuelve el proveedor o domain.ErrNotFound.
func (uc *SupplierUseCase) Get(ctx context.Context, companyID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

// List lista proveedores ordenados por nombre; status filtra si no es vacío.
func (uc *SupplierUseCase) List(ctx context.Context, companyID, status string) ([]dto.SupplierResponse, error) {
	list, err := uc.suppliers.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		if status != "" && s.Status != status {
			continue
		}
		out = append(out, *toSupplierResponse(s))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].CompanyName) < strings.ToLower(out[j].CompanyName)
	})
	return out, nil
}

// Update actualización parcial.
func (uc *SupplierUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.CompanyName != nil {
		name := strings.TrimSpace(*in.CompanyName)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre del proveedor es obligatorio", domain.ErrInvalidInput)
		}
		s.CompanyName = name
	}
	setString(&s.ContactName, in.ContactName)
	setString(&s.Email, in.Email)
	setString(&s.Phone, in.Phone)
	setString(&s.TaxID, in.TaxID)
	setString(&s.Address, in.Address)
	setString(&s.PaymentTerms, in.PaymentTerms)
	setString(&s.DeliveryTime, in.DeliveryTime)
	setString(&s.Status, in.Status)
	setString(&s.Notes, in.Notes)
	s.UpdatedAt = uc.now().UTC()
	if err := uc.suppliers.Update(ctx, s); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("supplier_id", id).Msg("actualizar proveedor")
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Delete elimina el proveedor. Los precios que lo referencian se conservan.
func (uc *SupplierUseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.suppliers.Delete(ctx, companyID, id); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("supplier_id", id).Msg("eliminar proveedor")
		return err
	}
	return nil
}

// ListPrices precios de compra del producto y el preferido a mostrar.
func (uc *SupplierUseCase) ListPrices(ctx context.Context, companyID, productID string) (*dto.SupplierPriceListResponse, error) {
	list, err := uc.prices.ListByProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	out := &dto.SupplierPriceListResponse{Items: make([]dto.SupplierPriceResponse, 0, len(list))}
	for _, sp := range list {
		out.Items = append(out.Items, toSupplierPriceResponse(sp))
	}
	if pref, ok := PreferredPrice(list); ok {
		r := toSupplierPriceResponse(pref)
		out.Preferred = &r
	}
	return out, nil
}

// AddPrice añade un precio de compra. Producto y proveedor deben existir.
func (uc *SupplierUseCase) AddPrice(ctx context.Context, companyID, productID string, in dto.SupplierPriceRequest) (*dto.SupplierPriceResponse, error) {
	if err := uc.checkPrice(ctx, companyID, in); err != nil {
		return nil, err
	}
	p, err := uc.products.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	sp := &entity.SupplierPrice{ProductID: productID}
	applyPrice(sp, in)
	if err := uc.prices.Create(ctx, companyID, sp); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("product_id", productID).Msg("crear precio de proveedor")
		return nil, err
	}
	out := toSupplierPriceResponse(*sp)
	return &out, nil
}

// UpdatePrice reemplaza un precio existente.
func (uc *SupplierUseCase) UpdatePrice(ctx context.Context, companyID, productID, priceID string, in dto.SupplierPriceRequest) (*dto.SupplierPriceResponse, error) {
	if err := uc.checkPrice(ctx, companyID, in); err != nil {
		return nil, err
	}
	sp, err := uc.prices.GetByID(ctx, companyID, productID, priceID)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, domain.ErrNotFound
	}
	applyPrice(sp, in)
	if err := uc.prices.Update(ctx, companyID, sp); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("price_id", priceID).Msg("actualizar precio de proveedor")
		return nil, err
	}
	out := toSupplierPriceResponse(*sp)
	return &out, nil
}

// DeletePrice elimina un precio.
func (uc *SupplierUseCase) DeletePrice(ctx context.Context, companyID, productID, priceID string) error {
	return uc.prices.Delete(ctx, companyID, productID, priceID)
}

func (uc *SupplierUseCase) checkPrice(ctx context.Context, companyID string, in dto.SupplierPriceRequest) error {
	if in.PurchasePrice.IsNegative() {
		return fmt.Errorf("%w: el precio de compra no puede ser negativo", domain.ErrInvalidInput)
	}
	s, err := uc.suppliers.GetByID(ctx, companyID, in.SupplierID)
	if err != nil {
		return err
	}
	if s == nil {
		return fmt.Errorf("%w: proveedor %q desconocido", domain.ErrInvalidInput, in.SupplierID)
	}
	return nil
}

func applyPrice(sp *entity.SupplierPrice, in dto.SupplierPriceRequest) {
	sp.SupplierID = in.SupplierID
	sp.SupplierRef = strings.TrimSpace(in.SupplierRef)
	sp.PurchasePrice = in.PurchasePrice
	sp.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	if sp.Currency == "" {
		sp.Currency = defaultCurrency
	}
	sp.IsPreferred = in.IsPreferred
}

// PreferredPrice devuelve el primer precio marcado como preferido, por referencia de proveedor.
// Puede haber varios marcados; no se corrige, solo se elige uno para mostrar.
func PreferredPrice(prices []entity.SupplierPrice) (entity.SupplierPrice, bool) {
	preferred := make([]entity.SupplierPrice, 0, 1)
	for _, sp := range prices {
		if sp.IsPreferred {
			preferred = append(preferred, sp)
		}
	}
	if len(preferred) == 0 {
		return entity.SupplierPrice{}, false
	}
	sort.SliceStable(preferred, func(i, j int) bool {
		if preferred[i].SupplierRef == preferred[j].SupplierRef {
			return preferred[i].ID < preferred[j].ID
		}
		return preferred[i].SupplierRef < preferred[j].SupplierRef
	})
	return preferred[0], true
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		CompanyName:  s.CompanyName,
		ContactName:  s.ContactName,
		Email:        s.Email,
		Phone:        s.Phone,
		TaxID:        s.TaxID,
		Address:      s.Address,
		PaymentTerms: s.PaymentTerms,
		DeliveryTime: s.DeliveryTime,
		Status:       s.Status,
		Notes:        s.Notes,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toSupplierPriceResponse(sp entity.SupplierPrice) dto.SupplierPriceResponse {
	return dto.SupplierPriceResponse{
		ID:            sp.ID,
		ProductID:     sp.ProductID,
		SupplierID:    sp.SupplierID,
		SupplierRef:   sp.SupplierRef,
		PurchasePrice: sp.PurchasePrice,
		Currency:      sp.Currency,
		IsPreferred:   sp.IsPreferred,
	}
}

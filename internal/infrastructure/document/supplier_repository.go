package document

import (
	"context"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
)

var (
	_ repository.SupplierRepository      = (*SupplierRepo)(nil)
	_ repository.SupplierPriceRepository = (*SupplierPriceRepo)(nil)
)

// SupplierRepo proveedores: companies/{c}/suppliers.
type SupplierRepo struct {
	store repository.DocumentStore
}

// NewSupplierRepository construye el repositorio de proveedores.
func NewSupplierRepository(store repository.DocumentStore) *SupplierRepo {
	return &SupplierRepo{store: store}
}

func (r *SupplierRepo) Create(ctx context.Context, supplier *entity.Supplier) error {
	id, err := create(ctx, r.store, supplierSchema, repository.SuppliersPath(supplier.CompanyID), toSupplierRecord(supplier))
	if err != nil {
		return err
	}
	supplier.ID = id
	return nil
}

func (r *SupplierRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Supplier, error) {
	var rec supplierRecord
	found, err := getDecoded(ctx, r.store, supplierSchema, repository.SuppliersPath(companyID), id, &rec)
	if err != nil || !found {
		return nil, err
	}
	return rec.entity(companyID, id), nil
}

func (r *SupplierRepo) Update(ctx context.Context, supplier *entity.Supplier) error {
	return update(ctx, r.store, supplierSchema, repository.SuppliersPath(supplier.CompanyID), supplier.ID, toSupplierRecord(supplier))
}

func (r *SupplierRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := listDecoded(ctx, r.store, supplierSchema, repository.SuppliersPath(companyID), func(id string, rec supplierRecord) {
		out = append(out, rec.entity(companyID, id))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SupplierRepo) Delete(ctx context.Context, companyID, id string) error {
	return remove(ctx, r.store, supplierSchema, repository.SuppliersPath(companyID), id)
}

// SupplierPriceRepo precios de compra: companies/{c}/products/{p}/supplierPrices.
type SupplierPriceRepo struct {
	store repository.DocumentStore
}

// NewSupplierPriceRepository construye el repositorio de precios de proveedor.
func NewSupplierPriceRepository(store repository.DocumentStore) *SupplierPriceRepo {
	return &SupplierPriceRepo{store: store}
}

func (r *SupplierPriceRepo) Create(ctx context.Context, companyID string, price *entity.SupplierPrice) error {
	id, err := create(ctx, r.store, supplierPriceSchema, repository.SupplierPricesPath(companyID, price.ProductID), toSupplierPriceRecord(price))
	if err != nil {
		return err
	}
	price.ID = id
	return nil
}

func (r *SupplierPriceRepo) GetByID(ctx context.Context, companyID, productID, id string) (*entity.SupplierPrice, error) {
	if !repository.ValidID(productID) {
		return nil, nil
	}
	var rec supplierPriceRecord
	found, err := getDecoded(ctx, r.store, supplierPriceSchema, repository.SupplierPricesPath(companyID, productID), id, &rec)
	if err != nil || !found {
		return nil, err
	}
	p := rec.entity(productID, id)
	return &p, nil
}

func (r *SupplierPriceRepo) Update(ctx context.Context, companyID string, price *entity.SupplierPrice) error {
	return update(ctx, r.store, supplierPriceSchema, repository.SupplierPricesPath(companyID, price.ProductID), price.ID, toSupplierPriceRecord(price))
}

func (r *SupplierPriceRepo) ListByProduct(ctx context.Context, companyID, productID string) ([]entity.SupplierPrice, error) {
	if !repository.ValidID(productID) {
		return nil, nil
	}
	var out []entity.SupplierPrice
	err := listDecoded(ctx, r.store, supplierPriceSchema, repository.SupplierPricesPath(companyID, productID), func(id string, rec supplierPriceRecord) {
		out = append(out, rec.entity(productID, id))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SupplierPriceRepo) Delete(ctx context.Context, companyID, productID, id string) error {
	return remove(ctx, r.store, supplierPriceSchema, repository.SupplierPricesPath(companyID, productID), id)
}

package document

import (
	"context"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre el almacén documental.
type ProductRepo struct {
	store repository.DocumentStore
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(store repository.DocumentStore) *ProductRepo {
	return &ProductRepo{store: store}
}

// Create persiste un nuevo producto y le asigna el ID generado por el almacén.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	id, err := create(ctx, r.store, productSchema, repository.ProductsPath(product.CompanyID), toProductRecord(product))
	if err != nil {
		return err
	}
	product.ID = id
	return nil
}

// GetByID obtiene un producto; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	var rec productRecord
	found, err := getDecoded(ctx, r.store, productSchema, repository.ProductsPath(companyID), id, &rec)
	if err != nil || !found {
		return nil, err
	}
	return rec.entity(companyID, id), nil
}

// Update reemplaza los campos de catálogo del producto.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return update(ctx, r.store, productSchema, repository.ProductsPath(product.CompanyID), product.ID, toProductRecord(product))
}

// ListByCompany lista todos los productos de la empresa.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Product, error) {
	var out []*entity.Product
	err := listDecoded(ctx, r.store, productSchema, repository.ProductsPath(companyID), func(id string, rec productRecord) {
		out = append(out, rec.entity(companyID, id))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete elimina solo el documento del producto; las subcolecciones las borra el caso de uso.
func (r *ProductRepo) Delete(ctx context.Context, companyID, id string) error {
	return remove(ctx, r.store, productSchema, repository.ProductsPath(companyID), id)
}

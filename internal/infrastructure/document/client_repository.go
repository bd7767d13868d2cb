package document

import (
	"context"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
)

var (
	_ repository.ClientRepository    = (*ClientRepo)(nil)
	_ repository.QuotationRepository = (*QuotationRepo)(nil)
)

// ClientRepo clientes: companies/{c}/clients.
type ClientRepo struct {
	store repository.DocumentStore
}

// NewClientRepository construye el repositorio de clientes.
func NewClientRepository(store repository.DocumentStore) *ClientRepo {
	return &ClientRepo{store: store}
}

func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	id, err := create(ctx, r.store, clientSchema, repository.ClientsPath(client.CompanyID), toClientRecord(client))
	if err != nil {
		return err
	}
	client.ID = id
	return nil
}

func (r *ClientRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Client, error) {
	var rec clientRecord
	found, err := getDecoded(ctx, r.store, clientSchema, repository.ClientsPath(companyID), id, &rec)
	if err != nil || !found {
		return nil, err
	}
	return rec.entity(companyID, id), nil
}

func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	return update(ctx, r.store, clientSchema, repository.ClientsPath(client.CompanyID), client.ID, toClientRecord(client))
}

func (r *ClientRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Client, error) {
	var out []*entity.Client
	err := listDecoded(ctx, r.store, clientSchema, repository.ClientsPath(companyID), func(id string, rec clientRecord) {
		out = append(out, rec.entity(companyID, id))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ClientRepo) Delete(ctx context.Context, companyID, id string) error {
	return remove(ctx, r.store, clientSchema, repository.ClientsPath(companyID), id)
}

// QuotationRepo cotizaciones: companies/{c}/quotations.
type QuotationRepo struct {
	store repository.DocumentStore
}

// NewQuotationRepository construye el repositorio de cotizaciones.
func NewQuotationRepository(store repository.DocumentStore) *QuotationRepo {
	return &QuotationRepo{store: store}
}

func (r *QuotationRepo) Create(ctx context.Context, quotation *entity.Quotation) error {
	id, err := create(ctx, r.store, quotationSchema, repository.QuotationsPath(quotation.CompanyID), toQuotationRecord(quotation))
	if err != nil {
		return err
	}
	quotation.ID = id
	return nil
}

func (r *QuotationRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Quotation, error) {
	var rec quotationRecord
	found, err := getDecoded(ctx, r.store, quotationSchema, repository.QuotationsPath(companyID), id, &rec)
	if err != nil || !found {
		return nil, err
	}
	return rec.entity(companyID, id), nil
}

func (r *QuotationRepo) Update(ctx context.Context, quotation *entity.Quotation) error {
	return update(ctx, r.store, quotationSchema, repository.QuotationsPath(quotation.CompanyID), quotation.ID, toQuotationRecord(quotation))
}

func (r *QuotationRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	err := listDecoded(ctx, r.store, quotationSchema, repository.QuotationsPath(companyID), func(id string, rec quotationRecord) {
		out = append(out, rec.entity(companyID, id))
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *QuotationRepo) Delete(ctx context.Context, companyID, id string) error {
	return remove(ctx, r.store, quotationSchema, repository.QuotationsPath(companyID), id)
}

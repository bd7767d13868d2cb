package repository

import (
	"context"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Client, error)
	Delete(ctx context.Context, companyID, id string) error
}

// QuotationRepository define el puerto de persistencia para Quotation.
type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Quotation, error)
	Update(ctx context.Context, quotation *entity.Quotation) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Quotation, error)
	Delete(ctx context.Context, companyID, id string) error
}

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

// ClientUseCase directorio de clientes.
type ClientUseCase struct {
	repo repository.ClientRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, log *logger.Logger) *ClientUseCase {
	return &ClientUseCase{repo: repo, log: log, now: time.Now}
}

// Create da de alta un cliente.
func (uc *ClientUseCase) Create(ctx context.Context, companyID string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	c := &entity.Client{CompanyID: companyID}
	if err := applyClient(c, in); err != nil {
		return nil, err
	}
	c.CreatedAt = uc.now().UTC()
	c.UpdatedAt = c.CreatedAt
	if err := uc.repo.Create(ctx, c); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Msg("crear cliente")
		return nil, err
	}
	return toClientResponse(c), nil
}

// Get devuelve el cliente o domain.ErrNotFound.
func (uc *ClientUseCase) Get(ctx context.Context, companyID, id string) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(c), nil
}

// List clientes ordenados por nombre.
func (uc *ClientUseCase) List(ctx context.Context, companyID string) ([]dto.ClientResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	sort.SliceStable(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

// Update reemplazo completo de los datos del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, companyID, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyClient(c, in); err != nil {
		return nil, err
	}
	c.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("client_id", id).Msg("actualizar cliente")
		return nil, err
	}
	return toClientResponse(c), nil
}

// Delete elimina el cliente. Sus cotizaciones quedan con un client_id colgante.
func (uc *ClientUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.repo.Delete(ctx, companyID, id)
}

func applyClient(c *entity.Client, in dto.ClientRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: el nombre del cliente es obligatorio", domain.ErrInvalidInput)
	}
	c.Name = name
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = strings.TrimSpace(in.Address)
	c.TaxID = strings.TrimSpace(in.TaxID)
	return nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		TaxID:     c.TaxID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

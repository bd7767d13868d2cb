package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

// QuotationPDFRenderer genera la versión imprimible de una cotización.
type QuotationPDFRenderer interface {
	GenerateQuotationPDF(ctx context.Context, q *entity.Quotation, client *entity.Client) ([]byte, error)
}

// QuotationUseCase cotizaciones: alta, consulta, estado, PDF y archivo.
type QuotationUseCase struct {
	quotations repository.QuotationRepository
	clients    repository.ClientRepository
	products   repository.ProductRepository
	pdf        QuotationPDFRenderer
	storage    repository.FileStorage
	log        *logger.Logger
	now        func() time.Time
}

// NewQuotationUseCase construye el caso de uso. storage puede ser nil.
func NewQuotationUseCase(
	quotations repository.QuotationRepository,
	clients repository.ClientRepository,
	products repository.ProductRepository,
	pdf QuotationPDFRenderer,
	storage repository.FileStorage,
	log *logger.Logger,
) *QuotationUseCase {
	return &QuotationUseCase{
		quotations: quotations,
		clients:    clients,
		products:   products,
		pdf:        pdf,
		storage:    storage,
		log:        log,
		now:        time.Now,
	}
}

// Create crea la cotización en borrador. El cliente debe existir y debe haber al menos una línea.
// Las líneas con producto toman de él la descripción y el precio si no vienen informados.
func (uc *QuotationUseCase) Create(ctx context.Context, companyID string, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: la cotización necesita al menos una línea", domain.ErrInvalidInput)
	}
	client, err := uc.clients.GetByID(ctx, companyID, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente %q desconocido", domain.ErrInvalidInput, in.ClientID)
	}

	items := make([]entity.QuotationItem, 0, len(in.Items))
	for i, it := range in.Items {
		item, err := uc.buildItem(ctx, companyID, it)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i+1, err)
		}
		items = append(items, item)
	}

	now := uc.now().UTC()
	number, err := uc.nextNumber(ctx, companyID, now)
	if err != nil {
		return nil, err
	}
	q := &entity.Quotation{
		CompanyID:  companyID,
		Number:     number,
		ClientID:   client.ID,
		Items:      items,
		Status:     entity.QuotationStatusDraft,
		Notes:      strings.TrimSpace(in.Notes),
		ValidUntil: in.ValidUntil,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.quotations.Create(ctx, q); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Msg("crear cotización")
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("number", number).Msg("cotización creada")
	return toQuotationResponse(q, client), nil
}

func (uc *QuotationUseCase) buildItem(ctx context.Context, companyID string, in dto.QuotationItemRequest) (entity.QuotationItem, error) {
	if in.Quantity < 1 {
		return entity.QuotationItem{}, fmt.Errorf("%w: cantidad debe ser >= 1", domain.ErrInvalidInput)
	}
	if in.TaxRate.IsNegative() {
		return entity.QuotationItem{}, fmt.Errorf("%w: impuesto negativo", domain.ErrInvalidInput)
	}
	item := entity.QuotationItem{
		ProductID:   in.ProductID,
		Description: strings.TrimSpace(in.Description),
		Quantity:    in.Quantity,
		TaxRate:     in.TaxRate,
	}
	if in.UnitPrice != nil {
		item.UnitPrice = *in.UnitPrice
	}
	if in.ProductID != "" && (item.Description == "" || in.UnitPrice == nil) {
		p, err := uc.products.GetByID(ctx, companyID, in.ProductID)
		if err != nil {
			return entity.QuotationItem{}, err
		}
		if p == nil {
			return entity.QuotationItem{}, fmt.Errorf("%w: producto %q desconocido", domain.ErrInvalidInput, in.ProductID)
		}
		if item.Description == "" {
			item.Description = p.Name
		}
		if in.UnitPrice == nil {
			item.UnitPrice = p.Price
		}
	}
	if item.Description == "" {
		return entity.QuotationItem{}, fmt.Errorf("%w: descripción obligatoria", domain.ErrInvalidInput)
	}
	if item.UnitPrice.IsNegative() {
		return entity.QuotationItem{}, fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	return item, nil
}

// nextNumber Q-YYYYMMDD-NNNN: el mayor correlativo del día más uno; tras un borrado no se
// repite un número en uso. Dos altas simultáneas pueden repetir número.
func (uc *QuotationUseCase) nextNumber(ctx context.Context, companyID string, now time.Time) (string, error) {
	prefix := "Q-" + now.Format("20060102") + "-"
	list, err := uc.quotations.ListByCompany(ctx, companyID)
	if err != nil {
		return "", err
	}
	seq := 0
	for _, q := range list {
		suffix, ok := strings.CutPrefix(q.Number, prefix)
		if !ok {
			continue
		}
		// cast interpretaría "0010" como octal.
		if n, err := strconv.Atoi(suffix); err == nil && n > seq {
			seq = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}

// Get devuelve la cotización con sus totales o domain.ErrNotFound.
func (uc *QuotationUseCase) Get(ctx context.Context, companyID, id string) (*dto.QuotationResponse, error) {
	q, client, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(q, client), nil
}

// List cotizaciones, más recientes primero; status filtra si no es vacío.
func (uc *QuotationUseCase) List(ctx context.Context, companyID, status string) ([]dto.QuotationResponse, error) {
	list, err := uc.quotations.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	clients, err := uc.clients.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = c
	}
	out := make([]dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		if status != "" && q.Status != status {
			continue
		}
		out = append(out, *toQuotationResponse(q, byID[q.ClientID]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// UpdateStatus cambia el estado. Cualquier transición entre estados conocidos está permitida.
func (uc *QuotationUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.QuotationResponse, error) {
	if !entity.IsValidQuotationStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	q, client, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	q.Status = status
	q.UpdatedAt = uc.now().UTC()
	if err := uc.quotations.Update(ctx, q); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("quotation_id", id).Msg("actualizar estado de cotización")
		return nil, err
	}
	return toQuotationResponse(q, client), nil
}

// Delete elimina la cotización.
func (uc *QuotationUseCase) Delete(ctx context.Context, companyID, id string) error {
	if err := uc.quotations.Delete(ctx, companyID, id); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("quotation_id", id).Msg("eliminar cotización")
		return err
	}
	uc.log.Info().Str("company_id", companyID).Str("quotation_id", id).Msg("cotización eliminada")
	return nil
}

// PDF genera el documento imprimible. Devuelve también el número para nombrar el archivo.
func (uc *QuotationUseCase) PDF(ctx context.Context, companyID, id string) ([]byte, string, error) {
	q, client, err := uc.load(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.pdf.GenerateQuotationPDF(ctx, q, client)
	if err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("quotation_id", id).Msg("generar pdf")
		return nil, "", err
	}
	return doc, q.Number, nil
}

// Archive sube el PDF al almacenamiento de archivos.
func (uc *QuotationUseCase) Archive(ctx context.Context, companyID, id string) (*dto.ArchiveResponse, error) {
	if uc.storage == nil {
		return nil, domain.ErrStorageUnavailable
	}
	doc, number, err := uc.PDF(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s/quotations/%s.pdf", repository.CompanyPath(companyID), number)
	url, err := uc.storage.Put(ctx, key, "application/pdf", doc)
	if err != nil {
		return nil, err
	}
	return &dto.ArchiveResponse{Key: key, URL: url}, nil
}

// load lee la cotización y su cliente (nil si fue borrado).
func (uc *QuotationUseCase) load(ctx context.Context, companyID, id string) (*entity.Quotation, *entity.Client, error) {
	q, err := uc.quotations.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, nil, err
	}
	if q == nil {
		return nil, nil, domain.ErrNotFound
	}
	client, err := uc.clients.GetByID(ctx, companyID, q.ClientID)
	if err != nil {
		return nil, nil, err
	}
	return q, client, nil
}

func toQuotationResponse(q *entity.Quotation, client *entity.Client) *dto.QuotationResponse {
	items := make([]dto.QuotationItemResponse, 0, len(q.Items))
	for _, it := range q.Items {
		items = append(items, dto.QuotationItemResponse{
			ProductID:   it.ProductID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal(),
		})
	}
	net, tax, total := q.Totals()
	out := &dto.QuotationResponse{
		ID:         q.ID,
		Number:     q.Number,
		ClientID:   q.ClientID,
		Items:      items,
		Status:     q.Status,
		Notes:      q.Notes,
		ValidUntil: q.ValidUntil,
		Subtotal:   net,
		Tax:        tax,
		Total:      total,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
	if client != nil {
		out.ClientName = client.Name
	}
	return out
}

package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/stock"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

// ReportContentType tipo MIME del informe de stock.
const ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StockReportWriter serializa los snapshots a un libro de cálculo.
type StockReportWriter interface {
	WriteStockReport(snaps []stock.Snapshot, generatedAt time.Time) ([]byte, error)
}

// ReportUseCase informe de stock descargable y su archivo en el almacenamiento.
type ReportUseCase struct {
	query   *StockQueryUseCase
	writer  StockReportWriter
	storage repository.FileStorage
	log     *logger.Logger
	now     func() time.Time
}

// NewReportUseCase construye el caso de uso. storage puede ser nil (archivo deshabilitado).
func NewReportUseCase(query *StockQueryUseCase, writer StockReportWriter, storage repository.FileStorage, log *logger.Logger) *ReportUseCase {
	return &ReportUseCase{query: query, writer: writer, storage: storage, log: log, now: time.Now}
}

// StockReport genera el XLSX con el estado actual.
func (uc *ReportUseCase) StockReport(ctx context.Context, companyID string) ([]byte, error) {
	snaps, err := uc.query.Snapshots(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out, err := uc.writer.WriteStockReport(snaps, uc.now())
	if err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Msg("generar informe de stock")
		return nil, err
	}
	return out, nil
}

// ArchiveStockReport genera el informe y lo sube al almacenamiento.
func (uc *ReportUseCase) ArchiveStockReport(ctx context.Context, companyID string) (*dto.ArchiveResponse, error) {
	if uc.storage == nil {
		return nil, domain.ErrStorageUnavailable
	}
	body, err := uc.StockReport(ctx, companyID)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s/reports/stock-%s.xlsx", repository.CompanyPath(companyID), uc.now().UTC().Format("20060102-150405"))
	url, err := uc.storage.Put(ctx, key, ReportContentType, body)
	if err != nil {
		return nil, err
	}
	return &dto.ArchiveResponse{Key: key, URL: url}, nil
}

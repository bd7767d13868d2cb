package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/inventory"
)

// StockHandler valoración del inventario e informes (protegido).
type StockHandler struct {
	query  *inventory.StockQueryUseCase
	report *inventory.ReportUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(query *inventory.StockQueryUseCase, report *inventory.ReportUseCase) *StockHandler {
	return &StockHandler{query: query, report: report}
}

// Portfolio godoc
// @Summary      Valoración del inventario
// @Description  Total, unidades, productos en stock bajo o agotados y desglose por familia.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PortfolioResponse
// @Router       /api/stock/portfolio [get]
func (h *StockHandler) Portfolio(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.query.Portfolio(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Informe de stock en Excel
// @Tags         stock
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	body, err := h.report.StockReport(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err, "")
	}
	c.Set(fiber.HeaderContentType, inventory.ReportContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="stock-%s.xlsx"`, time.Now().Format("20060102")))
	return c.Send(body)
}

// ArchiveReport godoc
// @Summary      Archivar informe de stock
// @Description  Sube el informe al almacenamiento S3 y devuelve un enlace temporal.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.ArchiveResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/stock/report/archive [post]
func (h *StockHandler) ArchiveReport(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.report.ArchiveStockReport(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

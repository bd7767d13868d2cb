package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/usecase"
)

// QuotationHandler cotizaciones a clientes (protegido).
type QuotationHandler struct {
	uc *usecase.QuotationUseCase
}

// NewQuotationHandler construye el handler.
func NewQuotationHandler(uc *usecase.QuotationUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cotización
// @Description  Numeración Q-YYYYMMDD-xxxx. Las líneas con product_id toman nombre y precio del producto si no se indican.
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuotationRequest  true  "client_id e items"
// @Success      201   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations [post]
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.CreateQuotationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := requestValidator.Struct(in); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cotización
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.QuotationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id} [get]
func (h *QuotationHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Get(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err, "cotización no encontrada")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cotizaciones
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "draft | sent | accepted | rejected"
// @Success      200     {array}  dto.QuotationResponse
// @Router       /api/quotations [get]
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.List(c.UserContext(), companyID, c.Query("status"))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la cotización
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cotización"
// @Param        body  body  dto.UpdateQuotationStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.QuotationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/status [patch]
func (h *QuotationHandler) UpdateStatus(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateQuotationStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := requestValidator.Struct(in); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), companyID, c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err, "cotización no encontrada")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cotización
// @Tags         quotations
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cotización"
// @Success      204
// @Router       /api/quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.UserContext(), companyID, c.Params("id")); err != nil {
		return respondError(c, err, "cotización no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Descargar cotización en PDF
// @Tags         quotations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/pdf [get]
func (h *QuotationHandler) PDF(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	doc, number, err := h.uc.PDF(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err, "cotización no encontrada")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s.pdf"`, number))
	return c.Send(doc)
}

// Archive godoc
// @Summary      Archivar cotización
// @Description  Sube el PDF al almacenamiento S3 y devuelve un enlace temporal.
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      201  {object}  dto.ArchiveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/quotations/{id}/archive [post]
func (h *QuotationHandler) Archive(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Archive(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err, "cotización no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

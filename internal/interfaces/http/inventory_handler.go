package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/inventory"
)

// InventoryHandler ubicaciones de stock e historial de movimientos de un producto (protegido).
type InventoryHandler struct {
	ledger    *inventory.LedgerUseCase
	movements *inventory.MovementLogUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, movements *inventory.MovementLogUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, movements: movements}
}

// ListLocations godoc
// @Summary      Listar ubicaciones del producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.LocationListResponse
// @Router       /api/products/{id}/locations [get]
func (h *InventoryHandler) ListLocations(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.ledger.ListLocations(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// AddLocation godoc
// @Summary      Añadir ubicación
// @Description  quantity se normaliza a entero >= 0. No registra movimiento.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.AddLocationRequest  true  "name, type (warehouse|customer|transit), quantity, is_main"
// @Success      201   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/locations [post]
func (h *InventoryHandler) AddLocation(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.AddLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.AddLocation(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateLocation godoc
// @Summary      Actualizar ubicación
// @Description  Reemplaza name, type y quantity; is_main se conserva.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id          path  string  true  "ID del producto"
// @Param        locationId  path  string  true  "ID de la ubicación"
// @Param        body  body  dto.UpdateLocationRequest  true  "name, type, quantity"
// @Success      200   {object}  dto.LocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/locations/{locationId} [put]
func (h *InventoryHandler) UpdateLocation(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.ledger.UpdateLocation(c.UserContext(), companyID, c.Params("id"), c.Params("locationId"), in)
	if err != nil {
		return respondError(c, err, "ubicación no encontrada")
	}
	return c.JSON(out)
}

// DeleteLocation godoc
// @Summary      Eliminar ubicación
// @Tags         inventory
// @Security     Bearer
// @Param        id          path  string  true  "ID del producto"
// @Param        locationId  path  string  true  "ID de la ubicación"
// @Success      204
// @Router       /api/products/{id}/locations/{locationId} [delete]
func (h *InventoryHandler) DeleteLocation(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	if err := h.ledger.DeleteLocation(c.UserContext(), companyID, c.Params("id"), c.Params("locationId")); err != nil {
		return respondError(c, err, "ubicación no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true   "ID del producto"
// @Param        type  query  string  false  "entry | exit | transfer | adjustment"
// @Success      200   {object}  dto.MovementListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.movements.ListMovements(c.UserContext(), companyID, c.Params("id"), c.Query("type"))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// RecordMovement godoc
// @Summary      Registrar movimiento
// @Description  Anota el movimiento en el historial; las cantidades por ubicación no cambian.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del producto"
// @Param        body  body  dto.RecordMovementRequest  true  "type, quantity, from/to (transfer), notes"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := requestValidator.Struct(in); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.movements.RecordMovement(c.UserContext(), companyID, c.Params("id"), GetActor(c), in)
	if err != nil {
		return respondError(c, err, "producto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/mail"
)

const defaultEventRange = 7 * 24 * time.Hour

// MailHandler correo y calendario de Google de cada usuario (protegido).
type MailHandler struct {
	uc *mail.SyncUseCase
}

// NewMailHandler construye el handler.
func NewMailHandler(uc *mail.SyncUseCase) *MailHandler {
	return &MailHandler{uc: uc}
}

// Connect godoc
// @Summary      Conectar cuenta de Google
// @Description  Guarda el token obtenido por el cliente con el flujo OAuth.
// @Tags         mail
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConnectMailRequest  true  "Token OAuth"
// @Success      200   {object}  dto.MailStatusResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/mail/connect [post]
func (h *MailHandler) Connect(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.ConnectMailRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := requestValidator.Struct(in); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.uc.Connect(c.UserContext(), companyID, userID, in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado de la conexión con Google
// @Tags         mail
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MailStatusResponse
// @Router       /api/mail/status [get]
func (h *MailHandler) Status(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Status(c.UserContext(), companyID, userID)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Disconnect godoc
// @Summary      Desconectar cuenta de Google
// @Tags         mail
// @Security     Bearer
// @Success      204
// @Router       /api/mail/connect [delete]
func (h *MailHandler) Disconnect(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Disconnect(c.UserContext(), companyID, userID); err != nil {
		return respondError(c, err, "")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Messages godoc
// @Summary      Correos recientes
// @Description  Cada correo indica los clientes y proveedores que aparecen en sus direcciones.
// @Tags         mail
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "Consulta con sintaxis de Gmail"
// @Param        max  query  int     false  "Máximo de mensajes"  default(20)
// @Success      200  {object}  dto.EmailListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/mail/messages [get]
func (h *MailHandler) Messages(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Messages(c.UserContext(), companyID, userID, c.Query("q"), c.QueryInt("max", 0))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// ClientMessages godoc
// @Summary      Correos intercambiados con un cliente
// @Tags         mail
// @Security     Bearer
// @Produce      json
// @Param        id   path   string  true   "ID del cliente"
// @Param        max  query  int     false  "Máximo de mensajes"  default(20)
// @Success      200  {object}  dto.EmailListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/messages [get]
func (h *MailHandler) ClientMessages(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.ClientMessages(c.UserContext(), companyID, userID, c.Params("id"), c.QueryInt("max", 0))
	if err != nil {
		return respondError(c, err, "cliente no encontrado")
	}
	return c.JSON(out)
}

// Send godoc
// @Summary      Enviar correo
// @Tags         mail
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendEmailRequest  true  "Destinatarios, asunto y cuerpo"
// @Success      201   {object}  dto.SendEmailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/mail/send [post]
func (h *MailHandler) Send(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.SendEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := requestValidator.Struct(in); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.uc.Send(c.UserContext(), companyID, userID, in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Events godoc
// @Summary      Eventos del calendario
// @Tags         calendar
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Inicio RFC3339 (por defecto ahora)"
// @Param        to    query  string  false  "Fin RFC3339 (por defecto +7 días)"
// @Success      200   {object}  dto.CalendarEventListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calendar/events [get]
func (h *MailHandler) Events(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	from, to, ok := eventRange(c.Query("from"), c.Query("to"), time.Now().UTC())
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben ser RFC3339 y from < to"})
	}
	out, err := h.uc.Events(c.UserContext(), companyID, userID, from, to)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// CreateEvent godoc
// @Summary      Crear evento en el calendario
// @Tags         calendar
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalendarEventRequest  true  "Evento"
// @Success      201   {object}  dto.CalendarEventResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/calendar/events [post]
func (h *MailHandler) CreateEvent(c *fiber.Ctx) error {
	companyID, userID := GetCompanyID(c), GetUserID(c)
	if companyID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CalendarEventRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := requestValidator.Struct(in); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.uc.CreateEvent(c.UserContext(), companyID, userID, in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// eventRange interpreta from/to; vacíos = [now, now+7d].
func eventRange(fromRaw, toRaw string, now time.Time) (time.Time, time.Time, bool) {
	from, to := now, now.Add(defaultEventRange)
	var err error
	if fromRaw != "" {
		if from, err = time.Parse(time.RFC3339, fromRaw); err != nil {
			return time.Time{}, time.Time{}, false
		}
		if toRaw == "" {
			to = from.Add(defaultEventRange)
		}
	}
	if toRaw != "" {
		if to, err = time.Parse(time.RFC3339, toRaw); err != nil {
			return time.Time{}, time.Time{}, false
		}
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

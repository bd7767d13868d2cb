package http

import (
	"bufio"
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/inventory"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/notification"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

// NotificationHandler notificaciones de stock bajo y caducidad (protegido).
type NotificationHandler struct {
	query  *inventory.StockQueryUseCase
	poller *notification.Poller
	log    *logger.Logger
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(query *inventory.StockQueryUseCase, poller *notification.Poller, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{query: query, poller: poller, log: log}
}

// List godoc
// @Summary      Notificaciones actuales
// @Description  Se recalculan en cada petición; no hay estado de leído.
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.NotificationsResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	out, err := h.query.Notifications(c.UserContext(), companyID, time.Now().UTC())
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Stream godoc
// @Summary      Flujo de notificaciones (SSE)
// @Description  Emite el conjunto completo en cada intervalo de sondeo hasta que el cliente cierra.
// @Tags         notifications
// @Security     Bearer
// @Produce      text/event-stream
// @Success      200  {object}  dto.NotificationsResponse
// @Router       /api/notifications/stream [get]
func (h *NotificationHandler) Stream(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	encode := c.App().Config().JSONEncoder

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	// El ctx de Fiber se recicla al volver del handler: lo necesario se copia antes.
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		err := h.poller.Run(ctx, companyID, func(n *dto.NotificationsResponse) error {
			payload, err := encode(n)
			if err != nil {
				return err
			}
			if _, err := w.WriteString("event: notifications\ndata: "); err != nil {
				return err
			}
			if _, err := w.Write(payload); err != nil {
				return err
			}
			if _, err := w.WriteString("\n\n"); err != nil {
				return err
			}
			// Flush falla cuando el cliente se ha desconectado.
			return w.Flush()
		})
		if err != nil {
			h.log.Debug().Err(err).Str("company_id", companyID).Msg("flujo de notificaciones cerrado")
		}
	})
	return nil
}

package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
)

// connectionChecker es el contrato mínimo para saber si el usuario tiene cuenta de Google conectada.
// Lo implementa *mail.SyncUseCase.
type connectionChecker interface {
	Status(ctx context.Context, companyID, userID string) (*dto.MailStatusResponse, error)
}

// RequireMailConnection corta las rutas de correo y calendario si el usuario no ha conectado su cuenta.
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 409 Conflict → no hay credencial guardada.
//   - 503 Service Unavailable → no se pudo leer el almacén de credenciales.
func RequireMailConnection(checker connectionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, userID := GetCompanyID(c), GetUserID(c)
		if companyID == "" || userID == "" {
			return unauthorized(c)
		}
		status, err := checker.Status(c.UserContext(), companyID, userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "CREDENTIALS_UNAVAILABLE",
				Message: "no se pudo leer la conexión con Google, intente más tarde",
			})
		}
		if !status.Connected {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "NOT_CONNECTED",
				Message: "conecte su cuenta de Google para usar correo y calendario",
			})
		}
		return c.Next()
	}
}

// Package mail sincroniza Gmail y Google Calendar con los contactos de la empresa.
package mail

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
)

// MessageClient acceso a Gmail. Un token rechazado (401) devuelve domain.ErrCredentialExpired.
type MessageClient interface {
	FetchMessages(ctx context.Context, token *oauth2.Token, query string, max int) ([]entity.EmailMessage, error)
	SendMessage(ctx context.Context, token *oauth2.Token, msg entity.OutgoingEmail) (string, error)
}

// EventClient acceso a Google Calendar, mismo contrato de errores que MessageClient.
type EventClient interface {
	FetchEvents(ctx context.Context, token *oauth2.Token, from, to time.Time) ([]entity.CalendarEvent, error)
	CreateEvent(ctx context.Context, token *oauth2.Token, ev entity.CalendarEvent) (*entity.CalendarEvent, error)
}

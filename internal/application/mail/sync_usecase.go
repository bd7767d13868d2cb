package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

const (
	defaultMaxMessages = 20
	maxMessages        = 100
)

// SyncUseCase correo y calendario del usuario autenticado.
//
// Si Google rechaza el token (401) la credencial guardada se borra y se devuelve
// domain.ErrReconnectRequired: el usuario debe volver a conectar su cuenta.
type SyncUseCase struct {
	creds     repository.CredentialStore
	messages  MessageClient
	events    EventClient
	clients   repository.ClientRepository
	suppliers repository.SupplierRepository
	log       *logger.Logger
}

// NewSyncUseCase construye el caso de uso.
func NewSyncUseCase(
	creds repository.CredentialStore,
	messages MessageClient,
	events EventClient,
	clients repository.ClientRepository,
	suppliers repository.SupplierRepository,
	log *logger.Logger,
) *SyncUseCase {
	return &SyncUseCase{creds: creds, messages: messages, events: events, clients: clients, suppliers: suppliers, log: log}
}

// Connect guarda el token obtenido por el cliente con el flujo OAuth.
func (uc *SyncUseCase) Connect(ctx context.Context, companyID, userID string, in dto.ConnectMailRequest) (*dto.MailStatusResponse, error) {
	if strings.TrimSpace(in.AccessToken) == "" {
		return nil, fmt.Errorf("%w: access_token obligatorio", domain.ErrInvalidInput)
	}
	tokenType := in.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}
	cred := &entity.OAuthCredential{
		CompanyID:    companyID,
		UserID:       userID,
		AccessToken:  in.AccessToken,
		RefreshToken: in.RefreshToken,
		TokenType:    tokenType,
		Expiry:       in.Expiry,
		Scope:        in.Scope,
	}
	if err := uc.creds.Save(ctx, cred); err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("user_id", userID).Msg("guardar credencial")
		return nil, err
	}
	return statusOf(cred), nil
}

// Status indica si hay cuenta conectada.
func (uc *SyncUseCase) Status(ctx context.Context, companyID, userID string) (*dto.MailStatusResponse, error) {
	cred, err := uc.creds.Get(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	return statusOf(cred), nil
}

// Disconnect borra la credencial guardada.
func (uc *SyncUseCase) Disconnect(ctx context.Context, companyID, userID string) error {
	return uc.creds.Clear(ctx, companyID, userID)
}

// Messages lee los mensajes recientes y marca los contactos conocidos.
func (uc *SyncUseCase) Messages(ctx context.Context, companyID, userID, query string, max int) (*dto.EmailListResponse, error) {
	token, err := uc.token(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if max <= 0 {
		max = defaultMaxMessages
	}
	if max > maxMessages {
		max = maxMessages
	}
	msgs, err := uc.messages.FetchMessages(ctx, token, query, max)
	if err != nil {
		return nil, uc.handle(ctx, companyID, userID, "gmail", err)
	}
	idx, err := uc.contacts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := &dto.EmailListResponse{Items: make([]dto.EmailMessageResponse, 0, len(msgs))}
	for _, m := range msgs {
		out.Items = append(out.Items, toEmailResponse(m, idx.Match(m)))
	}
	return out, nil
}

// ClientMessages mensajes intercambiados con un cliente (por su email).
func (uc *SyncUseCase) ClientMessages(ctx context.Context, companyID, userID, clientID string, max int) (*dto.EmailListResponse, error) {
	c, err := uc.clients.GetByID(ctx, companyID, clientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.Email == "" {
		return &dto.EmailListResponse{Items: make([]dto.EmailMessageResponse, 0)}, nil
	}
	return uc.Messages(ctx, companyID, userID, fmt.Sprintf("from:%s OR to:%s", c.Email, c.Email), max)
}

// Send envía un correo desde la cuenta conectada.
func (uc *SyncUseCase) Send(ctx context.Context, companyID, userID string, in dto.SendEmailRequest) (*dto.SendEmailResponse, error) {
	if len(in.To) == 0 {
		return nil, fmt.Errorf("%w: al menos un destinatario", domain.ErrInvalidInput)
	}
	token, err := uc.token(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	id, err := uc.messages.SendMessage(ctx, token, entity.OutgoingEmail{
		To:      in.To,
		Cc:      in.Cc,
		Subject: in.Subject,
		Body:    in.Body,
		HTML:    in.HTML,
	})
	if err != nil {
		return nil, uc.handle(ctx, companyID, userID, "gmail", err)
	}
	uc.log.Info().Str("company_id", companyID).Str("user_id", userID).Int("to", len(in.To)).Msg("correo enviado")
	return &dto.SendEmailResponse{ID: id}, nil
}

// Events eventos del calendario principal en [from, to).
func (uc *SyncUseCase) Events(ctx context.Context, companyID, userID string, from, to time.Time) (*dto.CalendarEventListResponse, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("%w: rango de fechas vacío", domain.ErrInvalidInput)
	}
	token, err := uc.token(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	evs, err := uc.events.FetchEvents(ctx, token, from, to)
	if err != nil {
		return nil, uc.handle(ctx, companyID, userID, "calendar", err)
	}
	out := &dto.CalendarEventListResponse{Items: make([]dto.CalendarEventResponse, 0, len(evs))}
	for _, ev := range evs {
		out.Items = append(out.Items, toEventResponse(ev))
	}
	return out, nil
}

// CreateEvent crea un evento en el calendario principal.
func (uc *SyncUseCase) CreateEvent(ctx context.Context, companyID, userID string, in dto.CalendarEventRequest) (*dto.CalendarEventResponse, error) {
	if strings.TrimSpace(in.Summary) == "" || !in.End.After(in.Start) {
		return nil, fmt.Errorf("%w: título y rango de fechas obligatorios", domain.ErrInvalidInput)
	}
	token, err := uc.token(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	ev, err := uc.events.CreateEvent(ctx, token, entity.CalendarEvent{
		Summary:     in.Summary,
		Description: in.Description,
		Location:    in.Location,
		Start:       in.Start,
		End:         in.End,
		Attendees:   in.Attendees,
	})
	if err != nil {
		return nil, uc.handle(ctx, companyID, userID, "calendar", err)
	}
	out := toEventResponse(*ev)
	return &out, nil
}

func (uc *SyncUseCase) token(ctx context.Context, companyID, userID string) (*oauth2.Token, error) {
	cred, err := uc.creds.Get(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, domain.ErrNotConnected
	}
	return &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		TokenType:    cred.TokenType,
		Expiry:       cred.Expiry,
	}, nil
}

// handle traduce el rechazo del token en ErrReconnectRequired tras borrar la credencial.
// El resto de errores se devuelven tal cual.
func (uc *SyncUseCase) handle(ctx context.Context, companyID, userID, api string, err error) error {
	if !errors.Is(err, domain.ErrCredentialExpired) {
		uc.log.Error().Err(err).Str("company_id", companyID).Str("api", api).Msg("llamada a google")
		return err
	}
	if cerr := uc.creds.Clear(ctx, companyID, userID); cerr != nil {
		uc.log.Error().Err(cerr).Str("company_id", companyID).Str("user_id", userID).Msg("borrar credencial expirada")
	}
	uc.log.Warn().Str("company_id", companyID).Str("user_id", userID).Str("api", api).Msg("credencial rechazada, se requiere reconectar")
	return domain.ErrReconnectRequired
}

func (uc *SyncUseCase) contacts(ctx context.Context, companyID string) (contactIndex, error) {
	clients, err := uc.clients.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.suppliers.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return newContactIndex(clients, suppliers), nil
}

func statusOf(cred *entity.OAuthCredential) *dto.MailStatusResponse {
	if cred == nil {
		return &dto.MailStatusResponse{Connected: false}
	}
	out := &dto.MailStatusResponse{Connected: true}
	if !cred.Expiry.IsZero() {
		exp := cred.Expiry
		out.Expiry = &exp
	}
	return out
}

func toEmailResponse(m entity.EmailMessage, matches []entity.ContactMatch) dto.EmailMessageResponse {
	contacts := make([]dto.ContactMatchResponse, 0, len(matches))
	for _, c := range matches {
		contacts = append(contacts, dto.ContactMatchResponse{Kind: c.Kind, ID: c.ID, Name: c.Name, Email: c.Email})
	}
	return dto.EmailMessageResponse{
		ID:       m.ID,
		ThreadID: m.ThreadID,
		From:     m.From,
		To:       m.To,
		Cc:       m.Cc,
		Subject:  m.Subject,
		Snippet:  m.Snippet,
		Date:     m.Date,
		Contacts: contacts,
	}
}

func toEventResponse(ev entity.CalendarEvent) dto.CalendarEventResponse {
	return dto.CalendarEventResponse{
		ID:          ev.ID,
		Summary:     ev.Summary,
		Description: ev.Description,
		Location:    ev.Location,
		Start:       ev.Start,
		End:         ev.End,
		Attendees:   ev.Attendees,
		HTMLLink:    ev.HTMLLink,
	}
}

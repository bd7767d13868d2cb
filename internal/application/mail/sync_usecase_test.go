package mail

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/document"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/memstore"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

const (
	company = "c1"
	user    = "u1"
)

type fakeGoogle struct {
	msgs      []entity.EmailMessage
	err       error
	lastQuery string
	lastToken string
	sent      []entity.OutgoingEmail
	events    []entity.CalendarEvent
}

func (f *fakeGoogle) FetchMessages(_ context.Context, token *oauth2.Token, query string, _ int) ([]entity.EmailMessage, error) {
	f.lastToken = token.AccessToken
	f.lastQuery = query
	return f.msgs, f.err
}

func (f *fakeGoogle) SendMessage(_ context.Context, _ *oauth2.Token, msg entity.OutgoingEmail) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "m-1", nil
}

func (f *fakeGoogle) FetchEvents(_ context.Context, _ *oauth2.Token, _, _ time.Time) ([]entity.CalendarEvent, error) {
	return f.events, f.err
}

func (f *fakeGoogle) CreateEvent(_ context.Context, _ *oauth2.Token, ev entity.CalendarEvent) (*entity.CalendarEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	ev.ID = "ev-1"
	return &ev, nil
}

type env struct {
	uc     *SyncUseCase
	creds  *memstore.CredentialStore
	google *fakeGoogle
	client *entity.Client
	supp   *entity.Supplier
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memstore.NewDocumentStore()
	clients := document.NewClientRepository(store)
	suppliers := document.NewSupplierRepository(store)

	c := &entity.Client{CompanyID: company, Name: "Maria", Email: "Maria@Example.com"}
	require.NoError(t, clients.Create(ctx, c))
	s := &entity.Supplier{CompanyID: company, CompanyName: "Zeta", Email: "compras@zeta.pt", Status: entity.SupplierStatusActive}
	require.NoError(t, suppliers.Create(ctx, s))

	e := &env{creds: memstore.NewCredentialStore(), google: &fakeGoogle{}, client: c, supp: s}
	e.uc = NewSyncUseCase(e.creds, e.google, e.google, clients, suppliers, logger.Nop())
	return e
}

func (e *env) connect(t *testing.T) {
	t.Helper()
	_, err := e.uc.Connect(context.Background(), company, user, dto.ConnectMailRequest{AccessToken: "tok"})
	require.NoError(t, err)
}

func TestSync_SinCuentaConectada(t *testing.T) {
	e := newEnv(t)
	_, err := e.uc.Messages(context.Background(), company, user, "", 0)
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	st, err := e.uc.Status(context.Background(), company, user)
	require.NoError(t, err)
	assert.False(t, st.Connected)
}

func TestSync_EmparejaContactos(t *testing.T) {
	e := newEnv(t)
	e.connect(t)
	e.google.msgs = []entity.EmailMessage{
		{ID: "1", From: "Maria <maria@example.COM>", To: []string{"yo@empresa.pt"}},
		{ID: "2", From: "yo@empresa.pt", To: []string{"otro@x.com"}, Cc: []string{"COMPRAS@zeta.pt", "maria@example.com"}},
		{ID: "3", From: "desconocido@x.com"},
	}

	res, err := e.uc.Messages(context.Background(), company, user, "", 0)
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, "tok", e.google.lastToken)

	require.Len(t, res.Items[0].Contacts, 1)
	assert.Equal(t, entity.ContactKindClient, res.Items[0].Contacts[0].Kind)
	assert.Equal(t, e.client.ID, res.Items[0].Contacts[0].ID)

	kinds := []string{res.Items[1].Contacts[0].Kind, res.Items[1].Contacts[1].Kind}
	assert.ElementsMatch(t, []string{entity.ContactKindClient, entity.ContactKindSupplier}, kinds)
	assert.Empty(t, res.Items[2].Contacts)
}

func TestSync_CredencialExpiradaSeBorra(t *testing.T) {
	e := newEnv(t)
	e.connect(t)
	e.google.err = fmt.Errorf("gmail: %w", domain.ErrCredentialExpired)

	_, err := e.uc.Messages(context.Background(), company, user, "", 0)
	assert.ErrorIs(t, err, domain.ErrReconnectRequired)

	cred, err := e.creds.Get(context.Background(), company, user)
	require.NoError(t, err)
	assert.Nil(t, cred, "la credencial se borra")

	_, err = e.uc.Messages(context.Background(), company, user, "", 0)
	assert.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestSync_OtrosErroresSePropagan(t *testing.T) {
	e := newEnv(t)
	e.connect(t)
	boom := errors.New("503 backend error")
	e.google.err = boom

	_, err := e.uc.Events(context.Background(), company, user, time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, boom)

	cred, _ := e.creds.Get(context.Background(), company, user)
	assert.NotNil(t, cred, "la credencial se conserva")
}

func TestSync_EnviarYCalendario(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.connect(t)

	res, err := e.uc.Send(ctx, company, user, dto.SendEmailRequest{To: []string{"maria@example.com"}, Subject: "Cotización", Body: "Adjunta"})
	require.NoError(t, err)
	assert.Equal(t, "m-1", res.ID)
	require.Len(t, e.google.sent, 1)
	assert.Equal(t, "Cotización", e.google.sent[0].Subject)

	start := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	ev, err := e.uc.CreateEvent(ctx, company, user, dto.CalendarEventRequest{Summary: "Visita", Start: start, End: start.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, "ev-1", ev.ID)

	_, err = e.uc.CreateEvent(ctx, company, user, dto.CalendarEventRequest{Summary: "Visita", Start: start, End: start})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSync_MensajesDeCliente(t *testing.T) {
	e := newEnv(t)
	e.connect(t)

	_, err := e.uc.ClientMessages(context.Background(), company, user, e.client.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, "from:Maria@Example.com OR to:Maria@Example.com", e.google.lastQuery)

	_, err = e.uc.ClientMessages(context.Background(), company, user, "no-existe", 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSync_ConectarYDesconectar(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	exp := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	st, err := e.uc.Connect(ctx, company, user, dto.ConnectMailRequest{AccessToken: "tok", Expiry: exp})
	require.NoError(t, err)
	assert.True(t, st.Connected)
	require.NotNil(t, st.Expiry)
	assert.Equal(t, exp, *st.Expiry)

	_, err = e.uc.Connect(ctx, company, user, dto.ConnectMailRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, e.uc.Disconnect(ctx, company, user))
	st, err = e.uc.Status(ctx, company, user)
	require.NoError(t, err)
	assert.False(t, st.Connected)
}

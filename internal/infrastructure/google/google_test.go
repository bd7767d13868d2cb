package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/config"
)

type callCounter struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *callCounter) GoogleCall(api string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.calls == nil {
		c.calls = make(map[string]int)
	}
	res := "ok"
	if err != nil {
		res = "error"
	}
	c.calls[api+"/"+res]++
}

func token() *oauth2.Token {
	return &oauth2.Token{AccessToken: "tok-123", TokenType: "Bearer"}
}

func mailConfig(url string) config.MailConfig {
	return config.MailConfig{GmailBaseURL: url, CalendarBaseURL: url, RatePerSecond: 100, Burst: 10, Timeout: 5 * time.Second}
}

func TestGmailClient_FetchMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case gmailMessagesPath:
			assert.Equal(t, "from:maria@example.com", r.URL.Query().Get("q"))
			assert.Equal(t, "5", r.URL.Query().Get("maxResults"))
			_, _ = w.Write([]byte(`{"messages":[{"id":"m1","threadId":"t1"}]}`))
		case gmailMessagesPath + "/m1":
			assert.Equal(t, "metadata", r.URL.Query().Get("format"))
			_, _ = w.Write([]byte(`{"id":"m1","threadId":"t1","snippet":"Hola","internalDate":"1767261600000",
				"payload":{"headers":[
					{"name":"From","value":"Maria <maria@example.com>"},
					{"name":"To","value":"yo@empresa.pt, Otro <otro@x.com>"},
					{"name":"Subject","value":"Pedido"}]}}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	calls := &callCounter{}
	c := NewGmailClient(mailConfig(srv.URL), NewLimiter(mailConfig(srv.URL)), calls)
	msgs, err := c.FetchMessages(context.Background(), token(), "from:maria@example.com", 5)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Maria <maria@example.com>", msgs[0].From)
	assert.Equal(t, []string{"yo@empresa.pt", "otro@x.com"}, msgs[0].To)
	assert.Equal(t, "Pedido", msgs[0].Subject)
	assert.Equal(t, time.UnixMilli(1767261600000).UTC(), msgs[0].Date)
	assert.Equal(t, 2, calls.calls["gmail/ok"])
}

func TestGmailClient_401EsCredencialExpirada(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"code":401,"message":"Invalid Credentials"}}`))
	}))
	defer srv.Close()

	calls := &callCounter{}
	c := NewGmailClient(mailConfig(srv.URL), nil, calls)
	_, err := c.FetchMessages(context.Background(), token(), "", 10)
	assert.ErrorIs(t, err, domain.ErrCredentialExpired)
	assert.Equal(t, 1, calls.calls["gmail/error"])
}

func TestGmailClient_OtroErrorNoEsExpiracion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"Rate Limit Exceeded"}}`))
	}))
	defer srv.Close()

	_, err := NewGmailClient(mailConfig(srv.URL), nil, nil).FetchMessages(context.Background(), token(), "", 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCredentialExpired)
	assert.Contains(t, err.Error(), "Rate Limit Exceeded")
}

func TestGmailClient_SinTokenNoLlama(t *testing.T) {
	hit := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hit = true }))
	defer srv.Close()

	_, err := NewGmailClient(mailConfig(srv.URL), nil, nil).FetchMessages(context.Background(), &oauth2.Token{}, "", 10)
	assert.ErrorIs(t, err, domain.ErrCredentialExpired)
	assert.False(t, hit)
}

func TestGmailClient_SendMessage(t *testing.T) {
	var raw string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, gmailMessagesPath+"/send", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		raw = body["raw"]
		_, _ = w.Write([]byte(`{"id":"sent-1"}`))
	}))
	defer srv.Close()

	id, err := NewGmailClient(mailConfig(srv.URL), nil, nil).SendMessage(context.Background(), token(), entity.OutgoingEmail{
		To: []string{"maria@example.com"}, Cc: []string{"jefe@empresa.pt"}, Subject: "Cotización Q-1", Body: "Adjuntamos la cotización",
	})
	require.NoError(t, err)
	assert.Equal(t, "sent-1", id)

	mime, err := base64.URLEncoding.DecodeString(raw)
	require.NoError(t, err)
	assert.Contains(t, string(mime), "To: maria@example.com")
	assert.Contains(t, string(mime), "Cc: jefe@empresa.pt")
	assert.Contains(t, string(mime), "text/plain")
}

func TestComposeMIME_HTML(t *testing.T) {
	out, err := ComposeMIME(entity.OutgoingEmail{To: []string{"a@b.c"}, Subject: "Hola", Body: "<b>hola</b>", HTML: true})
	require.NoError(t, err)
	assert.Contains(t, string(out), "text/html")
	assert.False(t, strings.Contains(string(out), "From:"))
}

func TestCalendarClient_FetchYCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, calendarEventsPath, r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "true", r.URL.Query().Get("singleEvents"))
			assert.Equal(t, "2026-04-01T00:00:00Z", r.URL.Query().Get("timeMin"))
			_, _ = w.Write([]byte(`{"items":[
				{"id":"e1","summary":"Visita","start":{"dateTime":"2026-04-01T10:00:00Z"},"end":{"dateTime":"2026-04-01T11:00:00Z"},"attendees":[{"email":"maria@example.com"}]},
				{"id":"e2","summary":"Feriado","start":{"date":"2026-04-03"},"end":{"date":"2026-04-04"}}]}`))
		case http.MethodPost:
			var ev calendarEvent
			require.NoError(t, json.NewDecoder(r.Body).Decode(&ev))
			ev.ID = "nuevo"
			ev.HTMLLink = "https://calendar.google.com/e/nuevo"
			_ = json.NewEncoder(w).Encode(ev)
		}
	}))
	defer srv.Close()

	c := NewCalendarClient(mailConfig(srv.URL), nil, nil)
	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	evs, err := c.FetchEvents(context.Background(), token(), from, from.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, []string{"maria@example.com"}, evs[0].Attendees)
	assert.Equal(t, time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC), evs[0].Start)
	assert.Equal(t, time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), evs[1].Start)

	created, err := c.CreateEvent(context.Background(), token(), entity.CalendarEvent{
		Summary: "Entrega", Start: from.Add(9 * time.Hour), End: from.Add(10 * time.Hour), Attendees: []string{"a@b.c"},
	})
	require.NoError(t, err)
	assert.Equal(t, "nuevo", created.ID)
	assert.Equal(t, "Entrega", created.Summary)
	assert.Equal(t, from.Add(9*time.Hour), created.Start)
	assert.Equal(t, []string{"a@b.c"}, created.Attendees)
}

func TestCalendarClient_401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewCalendarClient(mailConfig(srv.URL), nil, nil).FetchEvents(context.Background(), token(), time.Now(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrCredentialExpired)
}

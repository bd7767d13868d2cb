package google

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"gopkg.in/gomail.v2"

	appmail "github.com/joimopro25-dot/allinstock-sub001/internal/application/mail"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/config"
)

var _ appmail.MessageClient = (*GmailClient)(nil)

const gmailMessagesPath = "/gmail/v1/users/me/messages"

// GmailClient lee y envía correo con la API REST de Gmail.
type GmailClient struct {
	api apiClient
}

// NewGmailClient construye el cliente. limiter y calls pueden ser nil.
func NewGmailClient(cfg config.MailConfig, limiter *rate.Limiter, calls CallRecorder) *GmailClient {
	return &GmailClient{api: newAPIClient("gmail", cfg.GmailBaseURL, cfg.Timeout, limiter, calls)}
}

type gmailListResponse struct {
	Messages []struct {
		ID       string `json:"id"`
		ThreadID string `json:"threadId"`
	} `json:"messages"`
}

type gmailMessage struct {
	ID           string `json:"id"`
	ThreadID     string `json:"threadId"`
	Snippet      string `json:"snippet"`
	InternalDate string `json:"internalDate"`
	Payload      struct {
		Headers []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"headers"`
	} `json:"payload"`
}

// FetchMessages lista los mensajes que cumplen query y lee sus cabeceras (un GET por mensaje).
func (g *GmailClient) FetchMessages(ctx context.Context, token *oauth2.Token, query string, max int) ([]entity.EmailMessage, error) {
	q := url.Values{}
	q.Set("maxResults", strconv.Itoa(max))
	if query != "" {
		q.Set("q", query)
	}
	var list gmailListResponse
	if err := g.api.do(ctx, token, http.MethodGet, gmailMessagesPath, q, nil, &list); err != nil {
		return nil, err
	}

	out := make([]entity.EmailMessage, 0, len(list.Messages))
	for _, ref := range list.Messages {
		mq := url.Values{}
		mq.Set("format", "metadata")
		for _, h := range []string{"From", "To", "Cc", "Subject", "Date"} {
			mq.Add("metadataHeaders", h)
		}
		var msg gmailMessage
		if err := g.api.do(ctx, token, http.MethodGet, gmailMessagesPath+"/"+url.PathEscape(ref.ID), mq, nil, &msg); err != nil {
			return nil, err
		}
		out = append(out, msg.entity())
	}
	return out, nil
}

func (m gmailMessage) entity() entity.EmailMessage {
	out := entity.EmailMessage{ID: m.ID, ThreadID: m.ThreadID, Snippet: m.Snippet}
	for _, h := range m.Payload.Headers {
		switch strings.ToLower(h.Name) {
		case "from":
			out.From = h.Value
		case "to":
			out.To = splitAddresses(h.Value)
		case "cc":
			out.Cc = splitAddresses(h.Value)
		case "subject":
			out.Subject = h.Value
		case "date":
			if t, err := mail.ParseDate(h.Value); err == nil {
				out.Date = t.UTC()
			}
		}
	}
	if ms, err := strconv.ParseInt(m.InternalDate, 10, 64); err == nil && ms > 0 {
		out.Date = time.UnixMilli(ms).UTC()
	}
	return out
}

// SendMessage compone el MIME con gomail y lo envía en base64url.
func (g *GmailClient) SendMessage(ctx context.Context, token *oauth2.Token, msg entity.OutgoingEmail) (string, error) {
	raw, err := ComposeMIME(msg)
	if err != nil {
		return "", err
	}
	body := map[string]string{"raw": base64.URLEncoding.EncodeToString(raw)}
	var res struct {
		ID string `json:"id"`
	}
	if err := g.api.do(ctx, token, http.MethodPost, gmailMessagesPath+"/send", nil, body, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

// ComposeMIME genera el mensaje RFC 2822. Sin From, Gmail usa la cuenta autenticada.
func ComposeMIME(msg entity.OutgoingEmail) ([]byte, error) {
	m := gomail.NewMessage()
	if msg.From != "" {
		m.SetHeader("From", msg.From)
	}
	m.SetHeader("To", msg.To...)
	if len(msg.Cc) > 0 {
		m.SetHeader("Cc", msg.Cc...)
	}
	m.SetHeader("Subject", msg.Subject)
	contentType := "text/plain"
	if msg.HTML {
		contentType = "text/html"
	}
	m.SetBody(contentType, msg.Body)

	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("gmail: componer mensaje: %w", err)
	}
	return buf.Bytes(), nil
}

// splitAddresses separa una cabecera con varias direcciones.
func splitAddresses(header string) []string {
	if strings.TrimSpace(header) == "" {
		return nil
	}
	if list, err := mail.ParseAddressList(header); err == nil {
		out := make([]string, 0, len(list))
		for _, a := range list {
			out = append(out, a.Address)
		}
		return out
	}
	parts := strings.Split(header, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

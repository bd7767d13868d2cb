// Package google implementa los clientes REST de Gmail y Google Calendar.
// No hay estado global: cada cliente se construye con su URL base, su limitador
// y recibe el token del usuario en cada llamada.
package google

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/config"
)

// CallRecorder cuenta las llamadas salientes por API y resultado.
type CallRecorder interface {
	GoogleCall(api string, err error)
}

// NewLimiter limitador compartido por los clientes de Google.
func NewLimiter(cfg config.MailConfig) *rate.Limiter {
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
}

// apiClient transporte común: limitador, token por llamada y traducción del 401.
type apiClient struct {
	api     string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	calls   CallRecorder
}

func newAPIClient(api, baseURL string, timeout time.Duration, limiter *rate.Limiter, calls CallRecorder) apiClient {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return apiClient{
		api:     api,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		limiter: limiter,
		calls:   calls,
	}
}

// apiError respuesta de error de Google.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c apiClient) do(ctx context.Context, token *oauth2.Token, method, path string, query url.Values, body, out any) (err error) {
	defer func() {
		if c.calls != nil {
			c.calls.GoogleCall(c.api, err)
		}
	}()
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%s: %w", c.api, domain.ErrCredentialExpired)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: limitador: %w", c.api, err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: codificar petición: %w", c.api, err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%s: construir petición: %w", c.api, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// El token se inyecta tal cual; si caducó, Google responde 401.
	httpCtx := context.WithValue(ctx, oauth2.HTTPClient, c.http)
	client := oauth2.NewClient(httpCtx, oauth2.StaticTokenSource(token))
	client.Timeout = c.http.Timeout

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %s %s: %w", c.api, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%s: %w", c.api, domain.ErrCredentialExpired)
	}
	if resp.StatusCode >= 300 {
		var apiErr apiError
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("%s: %s %s: status %d: %s", c.api, method, path, resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("%s: %s %s: status %d", c.api, method, path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: decodificar respuesta: %w", c.api, err)
	}
	return nil
}

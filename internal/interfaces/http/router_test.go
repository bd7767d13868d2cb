package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/inventory"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/mail"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/notification"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/usecase"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/document"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/memstore"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/pdf"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/report"
	apphttp "github.com/joimopro25-dot/allinstock-sub001/internal/interfaces/http"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

// fakeGoogle sustituye a Gmail/Calendar; err se devuelve en todas las llamadas.
type fakeGoogle struct {
	err error
}

func (f *fakeGoogle) FetchMessages(context.Context, *oauth2.Token, string, int) ([]entity.EmailMessage, error) {
	return nil, f.err
}

func (f *fakeGoogle) SendMessage(context.Context, *oauth2.Token, entity.OutgoingEmail) (string, error) {
	return "m-1", f.err
}

func (f *fakeGoogle) FetchEvents(context.Context, *oauth2.Token, time.Time, time.Time) ([]entity.CalendarEvent, error) {
	return nil, f.err
}

func (f *fakeGoogle) CreateEvent(_ context.Context, _ *oauth2.Token, ev entity.CalendarEvent) (*entity.CalendarEvent, error) {
	return &ev, f.err
}

type apiEnv struct {
	app    *fiber.App
	store  *memstore.DocumentStore
	google *fakeGoogle
	creds  *memstore.CredentialStore
}

func newAPI(t *testing.T) *apiEnv {
	t.Helper()
	log := logger.Nop()
	store := memstore.NewDocumentStore()
	products := document.NewProductRepository(store)
	locations := document.NewStockLocationRepository(store)
	movements := document.NewStockMovementRepository(store)
	suppliers := document.NewSupplierRepository(store)
	prices := document.NewSupplierPriceRepository(store)
	clients := document.NewClientRepository(store)
	quotations := document.NewQuotationRepository(store)
	creds := memstore.NewCredentialStore()
	google := &fakeGoogle{}

	query := inventory.NewStockQueryUseCase(products, locations, 30*24*time.Hour, log)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(products, locations, prices, movements, "pt", log),
		SupplierUC:  usecase.NewSupplierUseCase(suppliers, prices, products, log),
		ClientUC:    usecase.NewClientUseCase(clients, log),
		QuotationUC: usecase.NewQuotationUseCase(quotations, clients, products, pdf.NewQuotationPDFGenerator("Demo"), nil, log),
		Ledger:      inventory.NewLedgerUseCase(products, locations, log),
		Movements:   inventory.NewMovementLogUseCase(products, movements, log),
		StockQuery:  query,
		Reports:     inventory.NewReportUseCase(query, report.NewExcelWriter(), nil, log),
		Poller:      notification.NewPoller(query, time.Minute, nil, log),
		MailSync:    mail.NewSyncUseCase(creds, google, google, clients, suppliers, log),
		JWTSecret:   testJWTSecret,
		JWTIssuer:   testIssuer,
		Log:         log,
	})
	return &apiEnv{app: app, store: store, google: google, creds: creds}
}

// call lanza la petición con token del rol indicado y devuelve status y body.
func (e *apiEnv) call(t *testing.T, role, method, path string, body any, headers ...string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Authorization", tokenForRole(t, role))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func (e *apiEnv) createProduct(t *testing.T, body map[string]any) dto.ProductStockSummary {
	t.Helper()
	status, raw := e.call(t, apphttp.RoleOperator, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, status, string(raw))
	return decode[dto.ProductStockSummary](t, raw)
}

func TestProductos_CrearConStockInicialLocalizado(t *testing.T) {
	e := newAPI(t)
	status, raw := e.call(t, apphttp.RoleOperator, http.MethodPost, "/api/products",
		map[string]any{"name": "Tornillo", "price": "2.50", "initial_stock": "5"},
		fiber.HeaderAcceptLanguage, "es-ES,es;q=0.9")
	require.Equal(t, http.StatusCreated, status, string(raw))

	out := decode[dto.ProductStockSummary](t, raw)
	require.Len(t, out.Locations, 1)
	assert.Equal(t, "Bodega Principal", out.Locations[0].Name)
	assert.True(t, out.Locations[0].IsMain)
	assert.Equal(t, 5, out.TotalStock)
	assert.Equal(t, "12.5", out.Value.String())
}

func TestProductos_CrearSinNombre_Retorna400(t *testing.T) {
	e := newAPI(t)
	status, raw := e.call(t, apphttp.RoleOperator, http.MethodPost, "/api/products", map[string]any{"price": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(raw), "VALIDATION")

	status, raw = e.call(t, apphttp.RoleOperator, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[dto.ProductListResponse](t, raw).Items, "no debe escribirse nada")
}

func TestProductos_ObtenerInexistente_Retorna404(t *testing.T) {
	e := newAPI(t)
	status, raw := e.call(t, apphttp.RoleOperator, http.MethodGet, "/api/products/nope", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, string(raw), "NOT_FOUND")
}

func TestUbicaciones_AñadirNormalizaYNoRegistraMovimiento(t *testing.T) {
	e := newAPI(t)
	p := e.createProduct(t, map[string]any{"name": "Cable", "initial_stock": 5})
	base := "/api/products/" + p.Product.ID

	status, raw := e.call(t, apphttp.RoleOperator, http.MethodPost, base+"/locations",
		map[string]any{"name": "Furgoneta", "type": "transit", "quantity": "12abc"})
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.Equal(t, 12, decode[dto.LocationResponse](t, raw).Quantity)

	status, raw = e.call(t, apphttp.RoleOperator, http.MethodGet, base+"/locations", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 17, decode[dto.LocationListResponse](t, raw).TotalStock)

	status, raw = e.call(t, apphttp.RoleOperator, http.MethodGet, base+"/movements", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[dto.MovementListResponse](t, raw).Items)
}

func TestUbicaciones_DocumentoCorrupto_Retorna500(t *testing.T) {
	e := newAPI(t)
	_, err := e.store.Create(context.Background(), repository.StockLocationsPath(testCompanyID, "p1"),
		json.RawMessage(`{"schemaVersion":2,"name":""}`))
	require.NoError(t, err)

	status, raw := e.call(t, apphttp.RoleOperator, http.MethodGet, "/api/products/p1/locations", nil)
	assert.Equal(t, http.StatusInternalServerError, status, string(raw))
	assert.Equal(t, "INTERNAL", decode[dto.ErrorResponse](t, raw).Code)
}

func TestUbicaciones_TipoDesconocido_Retorna400(t *testing.T) {
	e := newAPI(t)
	p := e.createProduct(t, map[string]any{"name": "Cable"})
	status, raw := e.call(t, apphttp.RoleOperator, http.MethodPost, "/api/products/"+p.Product.ID+"/locations",
		map[string]any{"name": "X", "type": "shelf", "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(raw), "VALIDATION")
}

func TestMovimientos_RegistrarUsaActorDelToken(t *testing.T) {
	e := newAPI(t)
	p := e.createProduct(t, map[string]any{"name": "Cable"})
	base := "/api/products/" + p.Product.ID + "/movements"

	status, raw := e.call(t, apphttp.RoleOperator, http.MethodPost, base, map[string]any{"type": "entry", "quantity": 3})
	require.Equal(t, http.StatusCreated, status, string(raw))
	assert.Equal(t, "ana@example.com", decode[dto.MovementResponse](t, raw).Actor)

	status, _ = e.call(t, apphttp.RoleOperator, http.MethodPost, base, map[string]any{"type": "gift", "quantity": 3})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = e.call(t, apphttp.RoleOperator, http.MethodGet, base+"?type=gift", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestProductos_BorrarRequiereRolYEnCascada(t *testing.T) {
	e := newAPI(t)
	p := e.createProduct(t, map[string]any{"name": "Cable", "initial_stock": 2})
	path := "/api/products/" + p.Product.ID

	status, _ := e.call(t, apphttp.RoleOperator, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = e.call(t, apphttp.RoleAdmin, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = e.call(t, apphttp.RoleAdmin, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, raw := e.call(t, apphttp.RoleAdmin, http.MethodGet, path+"/locations", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[dto.LocationListResponse](t, raw).Items)
}

func TestNotificaciones_StockBajo(t *testing.T) {
	e := newAPI(t)
	e.createProduct(t, map[string]any{"name": "Bajo", "min_stock": 10, "initial_stock": 5})
	e.createProduct(t, map[string]any{"name": "Sobrado", "min_stock": 1, "initial_stock": 50})

	status, raw := e.call(t, apphttp.RoleOperator, http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, status)
	out := decode[dto.NotificationsResponse](t, raw)
	require.Len(t, out.LowStock, 1)
	assert.Equal(t, "Bajo", out.LowStock[0].Name)
	assert.Equal(t, "low", out.LowStock[0].Status)
}

func TestStock_PortfolioEInforme(t *testing.T) {
	e := newAPI(t)
	e.createProduct(t, map[string]any{"name": "A", "family": "Ferretería", "price": "2", "initial_stock": 3})
	e.createProduct(t, map[string]any{"name": "B", "price": "1.5", "initial_stock": 2})

	status, raw := e.call(t, apphttp.RoleOperator, http.MethodGet, "/api/stock/portfolio", nil)
	require.Equal(t, http.StatusOK, status)
	out := decode[dto.PortfolioResponse](t, raw)
	assert.Equal(t, 2, out.Products)
	assert.Equal(t, "9", out.TotalValue.String())
	assert.Len(t, out.Families, 2)

	req := httptest.NewRequest(http.MethodGet, "/api/stock/report", nil)
	req.Header.Set("Authorization", tokenForRole(t, apphttp.RoleOperator))
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, inventory.ReportContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), ".xlsx")
}

func TestArchivo_SinAlmacenamiento_Retorna503(t *testing.T) {
	e := newAPI(t)
	status, raw := e.call(t, apphttp.RoleOperator, http.MethodPost, "/api/stock/report/archive", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, string(raw), "STORAGE_UNAVAILABLE")
}

func TestCotizaciones_CrearYDescargarPDF(t *testing.T) {
	e := newAPI(t)
	status, raw := e.call(t, apphttp.RoleOperator, http.MethodPost, "/api/clients", map[string]any{"name": "Maria", "email": "maria@example.com"})
	require.Equal(t, http.StatusCreated, status, string(raw))
	client := decode[dto.ClientResponse](t, raw)

	status, raw = e.call(t, apphttp.RoleOperator, http.MethodPost, "/api/quotations", map[string]any{
		"client_id": client.ID,
		"items":     []map[string]any{{"description": "Instalación", "quantity": 2, "unit_price": "10", "tax_rate": "23"}},
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	q := decode[dto.QuotationResponse](t, raw)
	assert.Regexp(t, `^Q-\d{8}-0001$`, q.Number)
	assert.Equal(t, "24.6", q.Total.String())
	assert.Equal(t, "Maria", q.ClientName)

	req := httptest.NewRequest(http.MethodGet, "/api/quotations/"+q.ID+"/pdf", nil)
	req.Header.Set("Authorization", tokenForRole(t, apphttp.RoleOperator))
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	status, _ = e.call(t, apphttp.RoleOperator, http.MethodPatch, "/api/quotations/"+q.ID+"/status", map[string]any{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCotizaciones_SinItems_Retorna400(t *testing.T) {
	e := newAPI(t)
	status, raw := e.call(t, apphttp.RoleOperator, http.MethodPost, "/api/quotations", map[string]any{"client_id": "x", "items": []any{}})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(raw), "VALIDATION")
}

func TestCorreo_SinConexion_Retorna409(t *testing.T) {
	e := newAPI(t)
	status, raw := e.call(t, apphttp.RoleOperator, http.MethodGet, "/api/mail/messages", nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, string(raw), "NOT_CONNECTED")
}

func TestCorreo_TokenRechazado_PideReconectarYBorraCredencial(t *testing.T) {
	e := newAPI(t)
	status, raw := e.call(t, apphttp.RoleOperator, http.MethodPost, "/api/mail/connect", map[string]any{"access_token": "ya29.x"})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.True(t, decode[dto.MailStatusResponse](t, raw).Connected)

	e.google.err = domain.ErrCredentialExpired
	status, raw = e.call(t, apphttp.RoleOperator, http.MethodGet, "/api/calendar/events", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(raw), "RECONNECT_REQUIRED")

	cred, err := e.creds.Get(context.Background(), testCompanyID, testUserID)
	require.NoError(t, err)
	assert.Nil(t, cred)

	status, raw = e.call(t, apphttp.RoleOperator, http.MethodGet, "/api/mail/status", nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decode[dto.MailStatusResponse](t, raw).Connected)
}

func TestCalendario_RangoInvalido_Retorna400(t *testing.T) {
	e := newAPI(t)
	_, _ = e.call(t, apphttp.RoleOperator, http.MethodPost, "/api/mail/connect", map[string]any{"access_token": "ya29.x"})
	status, _ := e.call(t, apphttp.RoleOperator, http.MethodGet, "/api/calendar/events?from=2026-01-02T00:00:00Z&to=2026-01-01T00:00:00Z", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/inventory"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/mail"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/notification"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/usecase"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	ClientUC    *usecase.ClientUseCase
	QuotationUC *usecase.QuotationUseCase
	Ledger      *inventory.LedgerUseCase
	Movements   *inventory.MovementLogUseCase
	StockQuery  *inventory.StockQueryUseCase
	Reports     *inventory.ReportUseCase
	Poller      *notification.Poller
	MailSync    *mail.SyncUseCase
	Metrics     http.Handler // nil = sin /metrics
	JWTSecret   string
	JWTIssuer   string
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	// Todas las rutas de empresa requieren Bearer Token del proveedor de identidad.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))
	canDelete := RequireRole(RoleAdmin, RoleManager)

	// Products + ubicaciones + movimientos + precios de proveedor
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockQuery)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", canDelete, productHandler.Delete)

	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.Movements)
	products.Get("/:id/locations", inventoryHandler.ListLocations)
	products.Post("/:id/locations", inventoryHandler.AddLocation)
	products.Put("/:id/locations/:locationId", inventoryHandler.UpdateLocation)
	products.Delete("/:id/locations/:locationId", inventoryHandler.DeleteLocation)
	products.Get("/:id/movements", inventoryHandler.ListMovements)
	products.Post("/:id/movements", inventoryHandler.RecordMovement)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	products.Get("/:id/prices", supplierHandler.ListPrices)
	products.Post("/:id/prices", supplierHandler.AddPrice)
	products.Put("/:id/prices/:priceId", supplierHandler.UpdatePrice)
	products.Delete("/:id/prices/:priceId", supplierHandler.DeletePrice)

	// Stock: valoración e informes
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockQuery, deps.Reports)
	stockGroup.Get("/portfolio", stockHandler.Portfolio)
	stockGroup.Get("/report", stockHandler.Report)
	stockGroup.Post("/report/archive", stockHandler.ArchiveReport)

	// Notificaciones
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.StockQuery, deps.Poller, deps.Log)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/stream", notificationHandler.Stream)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", canDelete, supplierHandler.Delete)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	mailHandler := NewMailHandler(deps.MailSync)
	requireMail := RequireMailConnection(deps.MailSync)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", canDelete, clientHandler.Delete)
	clients.Get("/:id/messages", requireMail, mailHandler.ClientMessages)

	// Quotations
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Patch("/:id/status", quotationHandler.UpdateStatus)
	quotations.Delete("/:id", canDelete, quotationHandler.Delete)
	quotations.Get("/:id/pdf", quotationHandler.PDF)
	quotations.Post("/:id/archive", quotationHandler.Archive)

	// Gmail / Calendar
	mailGroup := protected.Group("/mail")
	mailGroup.Post("/connect", mailHandler.Connect)
	mailGroup.Delete("/connect", mailHandler.Disconnect)
	mailGroup.Get("/status", mailHandler.Status)
	mailGroup.Get("/messages", requireMail, mailHandler.Messages)
	mailGroup.Post("/send", requireMail, mailHandler.Send)

	calendar := protected.Group("/calendar", requireMail)
	calendar.Get("/events", mailHandler.Events)
	calendar.Post("/events", mailHandler.CreateEvent)
}

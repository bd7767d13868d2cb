package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/inventory"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/mail"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/notification"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/usecase"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/document"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/google"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/memstore"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/metrics"
	infrapdf "github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/pdf"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/postgres"
	infraredis "github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/redis"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/report"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/storage"
	httpRouter "github.com/joimopro25-dot/allinstock-sub001/internal/interfaces/http"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/config"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		stop()
		log.Fatal().Err(err).Msg("aplicación detenida con error")
	}
	log.Info().Msg("aplicación detenida")
}

// run conecta la infraestructura y sirve HTTP hasta que ctx se cancela.
// Los recursos abiertos se cierran con defer antes de devolver cualquier error.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// Almacén documental
	var store repository.DocumentStore
	switch cfg.Store.Driver {
	case "memory":
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		store = memstore.NewDocumentStore()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				return fmt.Errorf("migraciones: %w", err)
			}
		}
		store = postgres.NewDocumentStore(pool)
	}
	if m != nil {
		store = metrics.NewInstrumentedStore(store, m)
	}

	productRepo := document.NewProductRepository(store)
	locationRepo := document.NewStockLocationRepository(store)
	movementRepo := document.NewStockMovementRepository(store)
	supplierRepo := document.NewSupplierRepository(store)
	priceRepo := document.NewSupplierPriceRepository(store)
	clientRepo := document.NewClientRepository(store)
	quotationRepo := document.NewQuotationRepository(store)

	// Credenciales OAuth: Redis si está configurado, si no memoria.
	var creds repository.CredentialStore
	if cfg.Redis.Addr != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("conexión a Redis: %w", err)
		}
		defer rdb.Close()
		redisCreds, err := infraredis.NewCredentialStore(rdb, cfg.Redis.SealKey, cfg.Redis.KeyPrefix)
		if err != nil {
			return fmt.Errorf("almacén de credenciales: %w", err)
		}
		creds = redisCreds
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: credenciales de Google en memoria")
		creds = memstore.NewCredentialStore()
	}

	// Archivo S3 opcional; sin bucket los endpoints de archivo responden 503.
	var files repository.FileStorage
	if cfg.Storage.Enabled() {
		s3, err := storage.NewS3Storage(ctx, cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			return fmt.Errorf("almacenamiento S3: %w", err)
		}
		files = s3
	}

	// Gmail y Calendar comparten el limitador de llamadas.
	var calls google.CallRecorder
	if m != nil {
		calls = m
	}
	limiter := google.NewLimiter(cfg.Mail)
	gmail := google.NewGmailClient(cfg.Mail, limiter, calls)
	calendar := google.NewCalendarClient(cfg.Mail, limiter, calls)

	stockQuery := inventory.NewStockQueryUseCase(productRepo, locationRepo, cfg.Notify.ExpiryWindow, log)
	var ticks notification.TickRecorder
	if m != nil {
		ticks = m
	}

	deps := httpRouter.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(productRepo, locationRepo, priceRepo, movementRepo, cfg.App.Locale, log),
		SupplierUC:  usecase.NewSupplierUseCase(supplierRepo, priceRepo, productRepo, log),
		ClientUC:    usecase.NewClientUseCase(clientRepo, log),
		QuotationUC: usecase.NewQuotationUseCase(quotationRepo, clientRepo, productRepo, infrapdf.NewQuotationPDFGenerator(cfg.App.Name), files, log),
		Ledger:      inventory.NewLedgerUseCase(productRepo, locationRepo, log),
		Movements:   inventory.NewMovementLogUseCase(productRepo, movementRepo, log),
		StockQuery:  stockQuery,
		Reports:     inventory.NewReportUseCase(stockQuery, report.NewExcelWriter(), files, log),
		Poller:      notification.NewPoller(stockQuery, cfg.Notify.PollInterval, ticks, log),
		MailSync:    mail.NewSyncUseCase(creds, gmail, calendar, clientRepo, supplierRepo, log),
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		Log:         log,
	}
	if m != nil {
		deps.Metrics = m.Handler()
	}

	// Sin WriteTimeout: /api/notifications/stream mantiene la respuesta abierta.
	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		IdleTimeout: time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere `swag init`).
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "AllInStock API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.HTTP.Addr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("servidor HTTP: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("apagado del servidor: %w", err)
	}
	return nil
}

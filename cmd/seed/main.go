// seed carga un catálogo de demostración en una empresa: proveedores, clientes, productos
// con stock inicial, una segunda ubicación y precios de proveedor.
//
// Uso:
//
//	go run ./cmd/seed -company <id> [-products 40] [-seed 1]
//	go run ./cmd/seed -company <id> -csv catalogo.csv -charset windows-1252
//
// Con -csv los productos salen del archivo en vez de generarse.
// También imprime un JWT de administrador para probar la API (requiere JWT_SECRET).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joimopro25-dot/allinstock-sub001/internal/application/dto"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/inventory"
	"github.com/joimopro25-dot/allinstock-sub001/internal/application/usecase"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/entity"
	"github.com/joimopro25-dot/allinstock-sub001/internal/domain/repository"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/document"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/memstore"
	"github.com/joimopro25-dot/allinstock-sub001/internal/infrastructure/postgres"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/config"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/jwt"
	"github.com/joimopro25-dot/allinstock-sub001/pkg/logger"
)

func main() {
	companyID := flag.String("company", "", "ID de la empresa (vacío = nuevo UUID)")
	nProducts := flag.Int("products", 40, "productos a generar")
	nSuppliers := flag.Int("suppliers", 5, "proveedores a generar")
	nClients := flag.Int("clients", 10, "clientes a generar")
	seed := flag.Uint64("seed", 0, "semilla de gofakeit (0 = aleatoria)")
	csvPath := flag.String("csv", "", "catálogo CSV a importar en lugar de generar productos")
	charset := flag.String("charset", "utf-8", "charset del CSV: utf-8, iso-8859-1, windows-1252")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if *companyID == "" {
		*companyID = uuid.NewString()
	}
	ctx := context.Background()

	var store repository.DocumentStore
	if cfg.Store.Driver == "memory" {
		log.Warn().Msg("STORE_DRIVER=memory: el seed no persiste nada, solo valida el catálogo")
		store = memstore.NewDocumentStore()
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		store = postgres.NewDocumentStore(pool)
	}

	products := document.NewProductRepository(store)
	locations := document.NewStockLocationRepository(store)
	prices := document.NewSupplierPriceRepository(store)
	suppliers := document.NewSupplierRepository(store)

	productUC := usecase.NewProductUseCase(products, locations, prices, document.NewStockMovementRepository(store), cfg.App.Locale, log)
	supplierUC := usecase.NewSupplierUseCase(suppliers, prices, products, log)
	clientUC := usecase.NewClientUseCase(document.NewClientRepository(store), log)
	ledger := inventory.NewLedgerUseCase(products, locations, log)

	f := gofakeit.New(*seed)
	now := time.Now().UTC()

	var catalog []dto.CreateProductRequest
	if *csvPath != "" {
		file, err := os.Open(*csvPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *csvPath).Msg("abrir CSV")
		}
		catalog, err = readCatalog(file, *charset)
		file.Close()
		if err != nil {
			log.Fatal().Err(err).Str("path", *csvPath).Msg("leer CSV")
		}
	} else {
		catalog = fakeCatalog(f, *nProducts, now)
	}

	supplierIDs := make([]string, 0, *nSuppliers)
	for i := 0; i < *nSuppliers; i++ {
		s, err := supplierUC.Create(ctx, *companyID, fakeSupplier(f))
		if err != nil {
			log.Fatal().Err(err).Msg("crear proveedor")
		}
		supplierIDs = append(supplierIDs, s.ID)
	}
	for i := 0; i < *nClients; i++ {
		if _, err := clientUC.Create(ctx, *companyID, fakeClient(f)); err != nil {
			log.Fatal().Err(err).Msg("crear cliente")
		}
	}

	for _, in := range catalog {
		if len(supplierIDs) > 0 {
			in.SupplierID = supplierIDs[f.IntRange(0, len(supplierIDs)-1)]
		}
		p, err := productUC.Create(ctx, *companyID, "", in)
		if err != nil {
			log.Fatal().Err(err).Str("product", in.Name).Msg("crear producto")
		}
		// Parte del stock en tránsito o en casa del cliente para que los totales sumen varias ubicaciones.
		if f.Bool() {
			locType := f.RandomString([]string{entity.LocationTypeTransit, entity.LocationTypeCustomer})
			if _, err := ledger.AddLocation(ctx, *companyID, p.Product.ID, dto.AddLocationRequest{
				Name:     f.City(),
				Type:     locType,
				Quantity: f.IntRange(1, 30),
			}); err != nil {
				log.Fatal().Err(err).Msg("crear ubicación")
			}
		}
		if p.Product.SupplierID != "" {
			cost := p.Product.Price.Mul(decimal.NewFromFloat(0.6)).Round(2)
			if _, err := supplierUC.AddPrice(ctx, *companyID, p.Product.ID, dto.SupplierPriceRequest{
				SupplierID:    p.Product.SupplierID,
				SupplierRef:   f.Numerify("SUP-####"),
				PurchasePrice: cost,
				IsPreferred:   true,
			}); err != nil {
				log.Fatal().Err(err).Msg("crear precio de proveedor")
			}
		}
	}

	log.Info().
		Str("company_id", *companyID).
		Int("products", len(catalog)).
		Int("suppliers", len(supplierIDs)).
		Int("clients", *nClients).
		Msg("seed completado")

	if cfg.JWT.Secret != "" {
		tok, err := jwt.Generate(cfg.JWT.Secret, jwt.Identity{
			UserID:    uuid.NewString(),
			CompanyID: *companyID,
			Email:     "demo@allinstock.local",
			Role:      "admin",
		}, cfg.JWT.Issuer, 24*60)
		if err != nil {
			log.Fatal().Err(err).Msg("generar token")
		}
		fmt.Println(tok)
	}
}

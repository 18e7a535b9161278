package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/facturacion-api/docs"
	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/inventory"
	"github.com/jhoicas/facturacion-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/facturacion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/report"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/facturacion-api/internal/interfaces/http"
	"github.com/jhoicas/facturacion-api/pkg/config"
	"github.com/jhoicas/facturacion-api/pkg/logger"
)

// txRunner lo cumplen tanto postgres.TxRunner como memory.TxRunner.
type txRunner interface {
	inventory.TxRunner
	billing.BillingTxRunner
}

// storage repositorios del driver elegido.
type storage struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	suppliers  repository.SupplierRepository
	customers  repository.CustomerRepository
	documents  repository.DocumentRepository
	movements  repository.MovementRepository
	tx         txRunner
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			categories: memory.NewCategoryRepository(s),
			products:   memory.NewProductRepository(s),
			suppliers:  memory.NewSupplierRepository(s),
			customers:  memory.NewCustomerRepository(s),
			documents:  memory.NewDocumentRepository(s),
			movements:  memory.NewMovementRepository(s),
			tx:         memory.NewTxRunner(s),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Storage.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Strs("migraciones", applied).Msg("esquema aplicado")
	}
	return &storage{
		categories: postgres.NewCategoryRepository(pool),
		products:   postgres.NewProductRepository(pool),
		suppliers:  postgres.NewSupplierRepository(pool),
		customers:  postgres.NewCustomerRepository(pool),
		documents:  postgres.NewDocumentRepository(pool),
		movements:  postgres.NewMovementRepository(pool),
		tx:         postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}

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
		Str("storage", cfg.Storage.Driver).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.close()

	ledger := inventory.NewStockLedger()
	policy := billing.ReversalPolicy{
		CompensatingMovements: cfg.Ledger.CompensatingMovements,
		ReverseOnDelete:       cfg.Ledger.ReverseOnDelete,
	}

	categoryUC := usecase.NewCategoryUseCase(store.categories, store.products)
	productUC := usecase.NewProductUseCase(store.products, store.categories, store.tx, ledger)
	supplierUC := billing.NewSupplierUseCase(store.suppliers)
	customerUC := billing.NewCustomerUseCase(store.customers)
	documents := billing.NewDocumentWorkflow(store.tx, store.documents, store.customers, store.suppliers, ledger, policy, log)
	registerMovementUC := inventory.NewRegisterMovementUseCase(store.tx, ledger)
	movementQueryUC := inventory.NewMovementQueryUseCase(store.movements, store.products, report.NewExcelExporter())

	// Representaciones descargables: PDF (maroto) y XML canónico con huella.
	renderUC := billing.NewRenderUseCase(
		store.documents, store.products, store.customers, store.suppliers,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name), xmlexport.NewExporter(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturación API",
	}))
	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC:       categoryUC,
		ProductUC:        productUC,
		SupplierUC:       supplierUC,
		CustomerUC:       customerUC,
		Documents:        documents,
		Render:           renderUC,
		RegisterMovement: registerMovementUC,
		MovementQuery:    movementQueryUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

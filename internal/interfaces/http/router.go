package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/inventory"
	"github.com/jhoicas/facturacion-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC       *usecase.CategoryUseCase
	ProductUC        *usecase.ProductUseCase
	SupplierUC       *billing.SupplierUseCase
	CustomerUC       *billing.CustomerUseCase
	Documents        *billing.DocumentWorkflow
	Render           *billing.RenderUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	MovementQuery    *inventory.MovementQueryUseCase
	// JWTSecret vacío deja las rutas de escritura abiertas.
	JWTSecret string
}

// Router registra las rutas de la API. Las lecturas son públicas; las escrituras
// exigen Bearer Token con rol admin u operador cuando hay secreto configurado.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	var guard []fiber.Handler
	if deps.JWTSecret != "" {
		guard = []fiber.Handler{
			AuthMiddleware(deps.JWTSecret),
			RequireRole(jwt.RoleAdmin, jwt.RoleOperator),
		}
	}
	write := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guard...), h)
	}

	// Categorías
	categories := api.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", write(categoryHandler.Create)...)
	categories.Put("/:id", write(categoryHandler.Update)...)
	categories.Patch("/:id", write(categoryHandler.Patch)...)
	categories.Delete("/:id", write(categoryHandler.Delete)...)

	// Productos (las rutas fijas antes de /:id)
	products := api.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC, deps.MovementQuery)
	products.Get("/", productHandler.List)
	products.Get("/bajo-stock", productHandler.BelowMinimum)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/conciliacion", productHandler.Reconcile)
	products.Post("/", write(productHandler.Create)...)
	products.Put("/:id", write(productHandler.Update)...)
	products.Patch("/:id", write(productHandler.Patch)...)
	products.Delete("/:id", write(productHandler.Delete)...)

	// Proveedores
	suppliers := api.Group("/proveedores")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", write(supplierHandler.Create)...)
	suppliers.Put("/:id", write(supplierHandler.Update)...)
	suppliers.Patch("/:id", write(supplierHandler.Patch)...)
	suppliers.Delete("/:id", write(supplierHandler.Delete)...)

	// Clientes
	customers := api.Group("/clientes")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", write(customerHandler.Create)...)
	customers.Put("/:id", write(customerHandler.Update)...)
	customers.Patch("/:id", write(customerHandler.Patch)...)
	customers.Delete("/:id", write(customerHandler.Delete)...)

	// Documentos
	documents := api.Group("/documentos")
	documentHandler := NewDocumentHandler(deps.Documents, deps.Render)
	documents.Get("/", documentHandler.List)
	documents.Get("/:id", documentHandler.GetByID)
	documents.Get("/:id/pdf", documentHandler.DownloadPDF)
	documents.Get("/:id/xml", documentHandler.DownloadXML)
	documents.Post("/", write(documentHandler.Create)...)
	documents.Put("/:id", write(documentHandler.Update)...)
	documents.Delete("/:id", write(documentHandler.Delete)...)

	// Movimientos
	movements := api.Group("/movimientos")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.MovementQuery)
	movements.Get("/", inventoryHandler.List)
	movements.Get("/reportes", inventoryHandler.Report)
	movements.Get("/producto/:id", inventoryHandler.ListByProduct)
	movements.Post("/", write(inventoryHandler.RegisterMovement)...)
}

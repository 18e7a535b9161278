package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/application/inventory"
	"github.com/jhoicas/facturacion-api/internal/application/usecase"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/memory"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/pdf"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/report"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/xmlexport"
	apphttp "github.com/jhoicas/facturacion-api/internal/interfaces/http"
	"github.com/jhoicas/facturacion-api/pkg/logger"
	pkgjwt "github.com/jhoicas/facturacion-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newAPI arma la API completa sobre el almacén en memoria.
func newAPI(t *testing.T, policy billing.ReversalPolicy, secret string) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	txRunner := memory.NewTxRunner(store)
	categoryRepo := memory.NewCategoryRepository(store)
	productRepo := memory.NewProductRepository(store)
	supplierRepo := memory.NewSupplierRepository(store)
	customerRepo := memory.NewCustomerRepository(store)
	docRepo := memory.NewDocumentRepository(store)
	movRepo := memory.NewMovementRepository(store)
	ledger := inventory.NewStockLedger()

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC:       usecase.NewCategoryUseCase(categoryRepo, productRepo),
		ProductUC:        usecase.NewProductUseCase(productRepo, categoryRepo, txRunner, ledger),
		SupplierUC:       billing.NewSupplierUseCase(supplierRepo),
		CustomerUC:       billing.NewCustomerUseCase(customerRepo),
		Documents:        billing.NewDocumentWorkflow(txRunner, docRepo, customerRepo, supplierRepo, ledger, policy, logger.Nop()),
		Render:           billing.NewRenderUseCase(docRepo, productRepo, customerRepo, supplierRepo, pdf.NewMarotoPDFGenerator("Almacén de prueba"), xmlexport.NewExporter()),
		RegisterMovement: inventory.NewRegisterMovementUseCase(txRunner, ledger),
		MovementQuery:    inventory.NewMovementQueryUseCase(movRepo, productRepo, report.NewExcelExporter()),
		JWTSecret:        secret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// seedProduct crea categoría y producto con el stock inicial dado.
func seedProduct(t *testing.T, app *fiber.App, stock int, salePrice int64) int64 {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/categorias/", dto.CategoryRequest{Name: fmt.Sprintf("cat-%d-%d", stock, salePrice)})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cat := decode[dto.CategoryResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/productos/", dto.ProductRequest{
		Name:          "Arroz 1kg",
		PurchasePrice: decimal.NewFromInt(salePrice / 2),
		SalePrice:     decimal.NewFromInt(salePrice),
		Stock:         stock,
		UnitMeasure:   "unidad",
		CategoryID:    cat.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp).ID
}

func stockOf(t *testing.T, app *fiber.App, productID int64) int {
	t.Helper()
	resp := call(t, app, http.MethodGet, fmt.Sprintf("/api/productos/%d", productID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp).Stock
}

func reconcile(t *testing.T, app *fiber.App, productID int64) dto.ReconciliationResponse {
	t.Helper()
	resp := call(t, app, http.MethodGet, fmt.Sprintf("/api/productos/%d/conciliacion", productID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.ReconciliationResponse](t, resp)
}

func document(op string, number string, lines ...dto.DocumentLineRequest) dto.DocumentRequest {
	return dto.DocumentRequest{Type: "factura", Number: number, Operation: op, Lines: lines}
}

func line(productID int64, qty int) dto.DocumentLineRequest {
	return dto.DocumentLineRequest{ProductID: productID, Quantity: qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos y stock
// ──────────────────────────────────────────────────────────────────────────────

func TestDocumentos_VentaDescuentaYCompraSuma(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 10, 100)

	resp := call(t, app, http.MethodPost, "/api/documentos/", document("VENTA", "F-001", line(pid, 4)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentResponse](t, resp)
	require.Len(t, doc.Lines, 1)
	assert.True(t, decimal.NewFromInt(100).Equal(doc.Lines[0].UnitPrice))
	assert.True(t, decimal.NewFromInt(400).Equal(doc.Lines[0].Subtotal))
	assert.Equal(t, 6, stockOf(t, app, pid))

	resp = call(t, app, http.MethodPost, "/api/documentos/", document("COMPRA", "C-001", line(pid, 7)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc = decode[dto.DocumentResponse](t, resp)
	assert.True(t, decimal.NewFromInt(50).Equal(doc.Lines[0].UnitPrice), "compra usa precio_compra")
	assert.Equal(t, 13, stockOf(t, app, pid))

	assert.True(t, reconcile(t, app, pid).Reconciled)
}

func TestDocumentos_VentaSinPisoDeStock(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 2, 100)

	resp := call(t, app, http.MethodPost, "/api/documentos/", document("VENTA", "F-002", line(pid, 5)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, -3, stockOf(t, app, pid))
}

func TestDocumentos_OperacionSeNormaliza(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 10, 100)

	resp := call(t, app, http.MethodPost, "/api/documentos/", document("venta", "F-003", line(pid, 1)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "VENTA", decode[dto.DocumentResponse](t, resp).Operation)
}

func TestDocumentos_OperacionInvalida_Retorna422(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 10, 100)

	resp := call(t, app, http.MethodPost, "/api/documentos/", document("DEVOLUCION", "F-004", line(pid, 1)))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Contains(t, body.Details, "operacion")
	assert.Equal(t, 10, stockOf(t, app, pid))
}

func TestDocumentos_CantidadCero_Retorna422(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 10, 100)

	resp := call(t, app, http.MethodPost, "/api/documentos/", document("VENTA", "F-005", line(pid, 0)))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Contains(t, body.Details, "detalles[0].cantidad")
}

func TestDocumentos_DetallesObligatorio(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")

	sinDetalles := map[string]any{"tipo": "factura", "numero": "F-006", "operacion": "VENTA"}
	resp := call(t, app, http.MethodPost, "/api/documentos/", sinDetalles)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Contains(t, body.Details, "detalles")

	// Una lista vacía sí es válida: documento sin líneas y total cero.
	vacio := map[string]any{"tipo": "factura", "numero": "F-007", "operacion": "VENTA", "detalles": []any{}}
	resp = call(t, app, http.MethodPost, "/api/documentos/", vacio)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentResponse](t, resp)
	assert.Empty(t, doc.Lines)
	assert.True(t, doc.Total.IsZero())
}

func TestDocumentos_UpdateVentaACompra(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 10, 100)

	resp := call(t, app, http.MethodPost, "/api/documentos/", document("VENTA", "F-010", line(pid, 5)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentResponse](t, resp)
	require.Equal(t, 5, stockOf(t, app, pid))

	resp = call(t, app, http.MethodPut, fmt.Sprintf("/api/documentos/%d", doc.ID), document("COMPRA", "F-010", line(pid, 3)))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.DocumentResponse](t, resp)
	assert.Equal(t, "COMPRA", updated.Operation)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, 3, updated.Lines[0].Quantity)

	// +5 de la reversión y +3 de la compra nueva.
	assert.Equal(t, 13, stockOf(t, app, pid))

	// Sin movimientos compensatorios el libro no ve la reversión.
	rec := reconcile(t, app, pid)
	assert.False(t, rec.Reconciled)
	assert.Equal(t, 5, rec.Divergence)
}

func TestDocumentos_CompensatoriosMantienenConciliacion(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{CompensatingMovements: true, ReverseOnDelete: true}, "")
	pid := seedProduct(t, app, 10, 100)

	resp := call(t, app, http.MethodPost, "/api/documentos/", document("VENTA", "F-020", line(pid, 5)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	doc := decode[dto.DocumentResponse](t, resp)

	resp = call(t, app, http.MethodPut, fmt.Sprintf("/api/documentos/%d", doc.ID), document("COMPRA", "F-020", line(pid, 3)))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 13, stockOf(t, app, pid))
	assert.True(t, reconcile(t, app, pid).Reconciled)

	resp = call(t, app, http.MethodDelete, fmt.Sprintf("/api/documentos/%d", doc.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 10, stockOf(t, app, pid))
	assert.True(t, reconcile(t, app, pid).Reconciled)
}

func TestDocumentos_DeletePorDefectoNoRevierte(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 10, 100)

	resp := call(t, app, http.MethodPost, "/api/documentos/", document("VENTA", "F-030", line(pid, 4)))
	doc := decode[dto.DocumentResponse](t, resp)

	resp = call(t, app, http.MethodDelete, fmt.Sprintf("/api/documentos/%d", doc.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 6, stockOf(t, app, pid))

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/documentos/%d", doc.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Los movimientos del documento siguen en el libro.
	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/movimientos/producto/%d", pid), nil)
	movs := decode[[]dto.MovementResponse](t, resp)
	assert.Len(t, movs, 2)
}

func TestDocumentos_ProductoInexistente_RevierteTodo(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 10, 100)

	resp := call(t, app, http.MethodPost, "/api/documentos/", document("VENTA", "F-040", line(pid, 2), line(pid, 1), line(99999, 1)))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "UNRESOLVED_PRODUCT", body.Code)

	assert.Equal(t, 10, stockOf(t, app, pid))
	resp = call(t, app, http.MethodGet, "/api/documentos/", nil)
	assert.Empty(t, decode[[]dto.DocumentResponse](t, resp))
	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/movimientos/producto/%d", pid), nil)
	assert.Len(t, decode[[]dto.MovementResponse](t, resp), 1, "solo la entrada del stock inicial")
}

func TestDocumentos_UpdateFallido_ConservaEstadoAnterior(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 10, 100)

	resp := call(t, app, http.MethodPost, "/api/documentos/", document("VENTA", "F-045", line(pid, 4)))
	doc := decode[dto.DocumentResponse](t, resp)

	resp = call(t, app, http.MethodPut, fmt.Sprintf("/api/documentos/%d", doc.ID), document("COMPRA", "F-045", line(99999, 1)))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, 6, stockOf(t, app, pid))
	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/documentos/%d", doc.ID), nil)
	got := decode[dto.DocumentResponse](t, resp)
	assert.Equal(t, "VENTA", got.Operation)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 4, got.Lines[0].Quantity)
}

func TestDocumentos_PrecioCapturadoNoCambia(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 10, 100)

	resp := call(t, app, http.MethodPost, "/api/documentos/", document("VENTA", "F-050", line(pid, 2)))
	doc := decode[dto.DocumentResponse](t, resp)

	newPrice := decimal.NewFromInt(150)
	resp = call(t, app, http.MethodPatch, fmt.Sprintf("/api/productos/%d", pid), dto.PatchProductRequest{SalePrice: &newPrice})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/documentos/%d", doc.ID), nil)
	got := decode[dto.DocumentResponse](t, resp)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Lines[0].UnitPrice))
	assert.True(t, decimal.NewFromInt(200).Equal(got.Total))
}

func TestDocumentos_NumeroDuplicado_Retorna409(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 10, 100)

	resp := call(t, app, http.MethodPost, "/api/documentos/", document("VENTA", "F-060", line(pid, 1)))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = call(t, app, http.MethodPost, "/api/documentos/", document("VENTA", "F-060", line(pid, 1)))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, 9, stockOf(t, app, pid))
}

func TestDocumentos_ClienteInexistente_Retorna404(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 10, 100)

	req := document("VENTA", "F-070", line(pid, 1))
	missing := int64(424242)
	req.CustomerID = &missing
	resp := call(t, app, http.MethodPost, "/api/documentos/", req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDocumentos_DescargaPDFyXML(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 10, 100)

	resp := call(t, app, http.MethodPost, "/api/clientes/", dto.CustomerRequest{Name: "Ana Pérez", Document: "0912345678"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	customer := decode[dto.CustomerResponse](t, resp)

	req := document("VENTA", "F-080", line(pid, 2))
	req.CustomerID = &customer.ID
	resp = call(t, app, http.MethodPost, "/api/documentos/", req)
	doc := decode[dto.DocumentResponse](t, resp)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/documentos/%d/pdf", doc.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "factura_F-080.pdf")
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/documentos/%d/xml", doc.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, resp.Header.Get(apphttp.HeaderFingerprint), 64)
	raw, _ = io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "Ana Pérez")

	resp = call(t, app, http.MethodGet, "/api/documentos/99999/pdf", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos manuales y reportes
// ──────────────────────────────────────────────────────────────────────────────

func TestMovimientos_EntradaYSalida(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 5, 100)

	resp := call(t, app, http.MethodPost, "/api/movimientos/", dto.CreateMovementRequest{ProductID: pid, Type: "entrada", Quantity: 3})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	mov := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, "entrada", mov.Type)
	require.NotNil(t, mov.Product)
	assert.Equal(t, 8, mov.Product.Stock)

	resp = call(t, app, http.MethodPost, "/api/movimientos/", dto.CreateMovementRequest{ProductID: pid, Type: "salida", Quantity: 8})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 0, stockOf(t, app, pid))
	assert.True(t, reconcile(t, app, pid).Reconciled)
}

func TestMovimientos_SalidaSinStock_Retorna400(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 2, 100)

	resp := call(t, app, http.MethodPost, "/api/movimientos/", dto.CreateMovementRequest{ProductID: pid, Type: "salida", Quantity: 3})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)
	assert.Equal(t, 2, stockOf(t, app, pid))

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/movimientos/producto/%d", pid), nil)
	assert.Len(t, decode[[]dto.MovementResponse](t, resp), 1)
}

func TestMovimientos_TipoInvalido_Retorna400(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 2, 100)

	resp := call(t, app, http.MethodPost, "/api/movimientos/", dto.CreateMovementRequest{ProductID: pid, Type: "ajuste", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_MOVEMENT_TYPE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestMovimientos_ProductoInexistente_Retorna404(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")

	resp := call(t, app, http.MethodPost, "/api/movimientos/", dto.CreateMovementRequest{ProductID: 777, Type: "entrada", Quantity: 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMovimientos_ReportePorTipoYExcel(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 5, 100)
	call(t, app, http.MethodPost, "/api/movimientos/", dto.CreateMovementRequest{ProductID: pid, Type: "salida", Quantity: 1})

	resp := call(t, app, http.MethodGet, "/api/movimientos/reportes?tipo=salida", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.MovementResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, "salida", list[0].Type)

	resp = call(t, app, http.MethodGet, "/api/movimientos/reportes?tipo=otro", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/movimientos/reportes?fecha_inicio=ayer", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/movimientos/reportes?formato=xlsx", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "movimientos.xlsx")
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogos
// ──────────────────────────────────────────────────────────────────────────────

func TestCategorias_EliminarConProductos_Retorna409(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 0, 100)

	resp := call(t, app, http.MethodGet, fmt.Sprintf("/api/productos/%d", pid), nil)
	product := decode[dto.ProductResponse](t, resp)

	resp = call(t, app, http.MethodDelete, fmt.Sprintf("/api/categorias/%d", product.CategoryID), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/categorias/%d", product.CategoryID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCategorias_NombreDuplicado_Retorna409(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")

	resp := call(t, app, http.MethodPost, "/api/categorias/", dto.CategoryRequest{Name: "Bebidas"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = call(t, app, http.MethodPost, "/api/categorias/", dto.CategoryRequest{Name: "Bebidas"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Distinta capitalización no colisiona.
	resp = call(t, app, http.MethodPost, "/api/categorias/", dto.CategoryRequest{Name: "bebidas"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCategorias_PatchSoloCamposPresentes(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	desc := "líquidos"
	resp := call(t, app, http.MethodPost, "/api/categorias/", dto.CategoryRequest{Name: "Bebidas", Description: &desc})
	cat := decode[dto.CategoryResponse](t, resp)

	name := "Refrescos"
	resp = call(t, app, http.MethodPatch, fmt.Sprintf("/api/categorias/%d", cat.ID), dto.PatchCategoryRequest{Name: &name})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.CategoryResponse](t, resp)
	assert.Equal(t, "Refrescos", got.Name)
	require.NotNil(t, got.Description)
	assert.Equal(t, "líquidos", *got.Description)
}

func TestProductos_CambioDeStockQuedaEnElLibro(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 10, 100)

	stock := 4
	resp := call(t, app, http.MethodPatch, fmt.Sprintf("/api/productos/%d", pid), dto.PatchProductRequest{Stock: &stock})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 4, stockOf(t, app, pid))
	assert.True(t, reconcile(t, app, pid).Reconciled)
}

func TestProductos_BajoStock(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	pid := seedProduct(t, app, 1, 100)
	minStock := 5
	call(t, app, http.MethodPatch, fmt.Sprintf("/api/productos/%d", pid), dto.PatchProductRequest{MinStock: &minStock})

	resp := call(t, app, http.MethodGet, "/api/productos/bajo-stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.ProductResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, pid, list[0].ID)
}

func TestProductos_IDNoNumerico_Retorna422(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	resp := call(t, app, http.MethodGet, "/api/productos/abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestProveedores_CRUD(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")

	resp := call(t, app, http.MethodPost, "/api/proveedores/", dto.SupplierRequest{Name: "Distribuidora Norte", RUC: "1790012345001"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sup := decode[dto.SupplierResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/proveedores/", dto.SupplierRequest{Name: "Otra", RUC: "1790012345001"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	phone := "022345678"
	resp = call(t, app, http.MethodPatch, fmt.Sprintf("/api/proveedores/%d", sup.ID), dto.PatchSupplierRequest{Phone: &phone})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1790012345001", decode[dto.SupplierResponse](t, resp).RUC)

	resp = call(t, app, http.MethodDelete, fmt.Sprintf("/api/proveedores/%d", sup.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = call(t, app, http.MethodGet, fmt.Sprintf("/api/proveedores/%d", sup.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClientes_EmailInvalido_Retorna422(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, "")
	email := "no-es-correo"
	resp := call(t, app, http.MethodPost, "/api/clientes/", dto.CustomerRequest{Name: "Ana", Document: "1", Email: &email})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Details, "email")
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación de rutas de escritura
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_EscrituraExigeTokenConSecreto(t *testing.T) {
	app := newAPI(t, billing.ReversalPolicy{}, testJWTSecret)

	resp := call(t, app, http.MethodPost, "/api/categorias/", dto.CategoryRequest{Name: "Bebidas"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/categorias/", dto.CategoryRequest{Name: "Bebidas"},
		"Authorization", tokenForRole(t, pkgjwt.RoleViewer))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/categorias/", dto.CategoryRequest{Name: "Bebidas"},
		"Authorization", tokenForRole(t, pkgjwt.RoleOperator))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/categorias/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

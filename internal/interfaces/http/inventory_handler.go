package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/application/inventory"
)

const dateLayout = "2006-01-02"

// InventoryHandler maneja las peticiones HTTP del libro de movimientos.
type InventoryHandler struct {
	register *inventory.RegisterMovementUseCase
	query    *inventory.MovementQueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(register *inventory.RegisterMovementUseCase, query *inventory.MovementQueryUseCase) *InventoryHandler {
	return &InventoryHandler{register: register, query: query}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual
// @Description  entrada suma al stock; salida exige stock suficiente.
// @Tags         movimientos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "producto_id, tipo (entrada|salida), cantidad"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movimientos [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if ok, err := bindBody(c, &in); !ok {
		return err
	}
	out, err := h.register.RegisterMovement(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movimientos
// @Produce      json
// @Param        skip   query  int  false  "Desplazamiento"  default(0)
// @Param        limit  query  int  false  "Límite"          default(100)
// @Success      200    {array}  dto.MovementResponse
// @Router       /api/movimientos [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	page, ok, err := pageParams(c, 100)
	if !ok {
		return err
	}
	out, err := h.query.List(c.Context(), page.Skip, page.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Movimientos de un producto
// @Tags         movimientos
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movimientos/producto/{id} [get]
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	out, err := h.query.ListByProduct(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de movimientos
// @Description  Filtra por tipo y rango de fechas (AAAA-MM-DD o RFC3339; fecha_fin incluye el día completo).
// @Description  Con formato=xlsx devuelve una hoja de cálculo.
// @Tags         movimientos
// @Produce      json
// @Param        tipo          query  string  false  "entrada | salida"
// @Param        fecha_inicio  query  string  false  "Desde"
// @Param        fecha_fin     query  string  false  "Hasta"
// @Param        formato       query  string  false  "json | xlsx"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/movimientos/reportes [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	in := dto.MovementReportRequest{Type: strings.ToLower(strings.TrimSpace(c.Query("tipo")))}
	var err error
	if in.From, err = parseDate(c.Query("fecha_inicio"), false); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error(), Details: map[string]string{"fecha_inicio": c.Query("fecha_inicio")}})
	}
	if in.To, err = parseDate(c.Query("fecha_fin"), true); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error(), Details: map[string]string{"fecha_fin": c.Query("fecha_fin")}})
	}

	switch strings.ToLower(c.Query("formato", "json")) {
	case "json":
		out, err := h.query.Report(c.Context(), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	case "xlsx":
		data, filename, contentType, err := h.query.ExportReport(c.Context(), in)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(fiber.HeaderContentType, contentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(data)
	default:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "formato debe ser json o xlsx"})
	}
}

// parseDate acepta AAAA-MM-DD o RFC3339. Una fecha sin hora usada como límite superior
// cubre el día completo.
func parseDate(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida %q: use AAAA-MM-DD o RFC3339", raw)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

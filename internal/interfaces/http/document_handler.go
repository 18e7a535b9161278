package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// HeaderFingerprint cabecera con la huella SHA-256 del XML canónico.
const HeaderFingerprint = "X-Documento-Huella"

// DocumentHandler maneja las peticiones HTTP de documentos de compra y venta.
type DocumentHandler struct {
	workflow *billing.DocumentWorkflow
	render   *billing.RenderUseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(workflow *billing.DocumentWorkflow, render *billing.RenderUseCase) *DocumentHandler {
	return &DocumentHandler{workflow: workflow, render: render}
}

// Create godoc
// @Summary      Registrar documento
// @Description  Persiste cabecera y líneas con el precio vigente del producto y ajusta el stock:
// @Description  VENTA descuenta, COMPRA suma. Todo ocurre en una sola transacción.
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DocumentRequest  true  "Cabecera y detalles"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/documentos [post]
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	in, ok, err := h.bind(c)
	if !ok {
		return err
	}
	out, err := h.workflow.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Tags         documentos
// @Produce      json
// @Param        skip   query  int  false  "Desplazamiento"  default(0)
// @Param        limit  query  int  false  "Límite"          default(100)
// @Success      200    {array}  dto.DocumentResponse
// @Router       /api/documentos [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	page, ok, err := pageParams(c, 100)
	if !ok {
		return err
	}
	out, err := h.workflow.List(c.Context(), page.Skip, page.Limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento por ID
// @Tags         documentos
// @Produce      json
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	out, err := h.workflow.Get(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar documento
// @Description  Revierte el efecto de stock de las líneas anteriores y aplica las nuevas.
// @Tags         documentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "ID del documento"
// @Param        body  body  dto.DocumentRequest  true  "Cabecera y detalles"
// @Success      200   {object}  dto.DocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/documentos/{id} [put]
func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	in, ok, err := h.bind(c)
	if !ok {
		return err
	}
	out, err := h.workflow.Update(c.Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento
// @Tags         documentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	if err := h.workflow.Delete(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: fmt.Sprintf("Documento %d eliminado correctamente", id)})
}

// DownloadPDF godoc
// @Summary      Descargar documento en PDF
// @Tags         documentos
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id}/pdf [get]
func (h *DocumentHandler) DownloadPDF(c *fiber.Ctx) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	data, filename, err := h.render.DownloadPDF(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// DownloadXML godoc
// @Summary      Descargar documento en XML canónico
// @Description  La huella SHA-256 del XML viaja en la cabecera X-Documento-Huella.
// @Tags         documentos
// @Produce      application/xml
// @Param        id   path  int  true  "ID del documento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documentos/{id}/xml [get]
func (h *DocumentHandler) DownloadXML(c *fiber.Ctx) error {
	id, ok, err := pathID(c)
	if !ok {
		return err
	}
	data, filename, fingerprint, err := h.render.DownloadXML(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Set(HeaderFingerprint, fingerprint)
	return c.Send(data)
}

// bind parsea el cuerpo, normaliza operacion a mayúsculas y recién entonces valida.
func (h *DocumentHandler) bind(c *fiber.Ctx) (dto.DocumentRequest, bool, error) {
	var in dto.DocumentRequest
	if ok, err := parseBody(c, &in); !ok {
		return in, false, err
	}
	op, _ := entity.ParseOperation(in.Operation)
	in.Operation = string(op)
	if ok, err := validateBody(c, &in); !ok {
		return in, false, err
	}
	return in, true, nil
}

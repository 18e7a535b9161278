package http

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
)

var validate = newValidator()

// newValidator reporta los campos con su nombre JSON (detalles[0].cantidad).
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseBody decodifica el cuerpo JSON. Si falla ya respondió 422 y ok es false.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	return true, nil
}

// validateBody aplica las reglas `validate` del DTO. Si falla ya respondió 422.
func validateBody(c *fiber.Ctx, in any) (bool, error) {
	err := validate.Struct(in)
	if err == nil {
		return true, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false, c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		details[fieldPath(fe)] = rule
	}
	return false, c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: "datos inválidos",
		Details: details,
	})
}

// bindBody parsea y valida en un paso.
func bindBody(c *fiber.Ctx, out any) (bool, error) {
	if ok, err := parseBody(c, out); !ok {
		return false, err
	}
	return validateBody(c, out)
}

// fieldPath quita el nombre del struct raíz del namespace del validador.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// pathID lee el parámetro :id como entero positivo. Si no lo es ya respondió 422.
func pathID(c *fiber.Ctx) (int64, bool, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false, c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "id debe ser un entero positivo",
			Details: map[string]string{"id": c.Params("id")},
		})
	}
	return id, true, nil
}

// pageParams lee skip/limit de la query aplicando el límite por defecto del recurso.
func pageParams(c *fiber.Ctx, defaultLimit int) (dto.PageRequest, bool, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, false, c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "skip y limit deben ser enteros"})
	}
	if ok, err := validateBody(c, &page); !ok {
		return page, false, err
	}
	page.DefaultPage(defaultLimit)
	return page, true, nil
}

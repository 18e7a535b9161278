// Package billing contiene reglas de dominio de documentos de compra/venta.
package billing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// ErrInvalidDocument agrupa errores de validación de documento. Envuelve domain.ErrInvalidInput.
var ErrInvalidDocument = fmt.Errorf("%w: documento inválido", domain.ErrInvalidInput)

// LineRequest línea solicitada (producto y cantidad) antes de resolver precios.
type LineRequest struct {
	ProductID int64
	Quantity  int
}

// ValidateHeader valida tipo, número y operación de la cabecera.
func ValidateHeader(docType, number string, op entity.Operation) error {
	var errs []error
	if strings.TrimSpace(docType) == "" {
		errs = append(errs, errors.New("tipo requerido"))
	}
	if strings.TrimSpace(number) == "" {
		errs = append(errs, errors.New("numero requerido"))
	}
	if op != entity.OperationPurchase && op != entity.OperationSale {
		errs = append(errs, fmt.Errorf("operacion %q debe ser COMPRA o VENTA", op))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(errs...))
	}
	return nil
}

// ValidateLines exige producto y cantidad positiva en cada línea.
func ValidateLines(lines []LineRequest) error {
	var errs []error
	for i, l := range lines {
		if l.ProductID <= 0 {
			errs = append(errs, fmt.Errorf("línea %d: producto_id requerido", i+1))
		}
		if l.Quantity <= 0 {
			errs = append(errs, fmt.Errorf("línea %d: cantidad debe ser positiva", i+1))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(errs...))
	}
	return nil
}

// CheckSubtotals comprueba que cada línea cumpla subtotal = cantidad × precio unitario.
func CheckSubtotals(lines []*entity.DocumentLine) error {
	for i, l := range lines {
		want := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		if !want.Equal(l.Subtotal) {
			return fmt.Errorf("%w: línea %d subtotal %s, esperado %s",
				ErrInvalidDocument, i+1, l.Subtotal.String(), want.String())
		}
	}
	return nil
}

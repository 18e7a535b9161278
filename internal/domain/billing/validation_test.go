package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/domain/billing"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

func TestValidateHeader(t *testing.T) {
	tests := []struct {
		name    string
		tipo    string
		numero  string
		op      entity.Operation
		wantErr bool
	}{
		{"venta válida", "Factura", "F001-1", entity.OperationSale, false},
		{"compra válida", "Boleta", "B001-9", entity.OperationPurchase, false},
		{"sin tipo", "", "F001-1", entity.OperationSale, true},
		{"sin número", "Factura", "  ", entity.OperationSale, true},
		{"operación inválida", "Factura", "F001-1", "DEVOLUCION", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := billing.ValidateHeader(tt.tipo, tt.numero, tt.op)
			if tt.wantErr {
				assert.ErrorIs(t, err, billing.ErrInvalidDocument)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateLines_CantidadPositiva(t *testing.T) {
	err := billing.ValidateLines([]billing.LineRequest{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 0},
	})
	require.ErrorIs(t, err, billing.ErrInvalidDocument)
	assert.Contains(t, err.Error(), "línea 2")

	assert.NoError(t, billing.ValidateLines(nil), "un documento sin líneas es válido")
}

func TestCheckSubtotals(t *testing.T) {
	product := &entity.Product{ID: 7, PurchasePrice: decimal.RequireFromString("2.50"), SalePrice: decimal.RequireFromString("4.10")}
	line := entity.NewDocumentLine(1, product, 3, entity.OperationSale)

	assert.True(t, decimal.RequireFromString("12.30").Equal(line.Subtotal))
	require.NoError(t, billing.CheckSubtotals([]*entity.DocumentLine{line}))

	line.Subtotal = decimal.RequireFromString("12.00")
	assert.ErrorIs(t, billing.CheckSubtotals([]*entity.DocumentLine{line}), billing.ErrInvalidDocument)
}

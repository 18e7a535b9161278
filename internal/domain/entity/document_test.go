package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

func TestParseOperation_NormalizaMayusculas(t *testing.T) {
	tests := []struct {
		in     string
		want   entity.Operation
		wantOK bool
	}{
		{"VENTA", entity.OperationSale, true},
		{"venta", entity.OperationSale, true},
		{" Compra ", entity.OperationPurchase, true},
		{"devolucion", "DEVOLUCION", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := entity.ParseOperation(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestOperation_Direction(t *testing.T) {
	assert.Equal(t, entity.DirectionOut, entity.OperationSale.Direction())
	assert.Equal(t, entity.DirectionIn, entity.OperationPurchase.Direction())
	// Cualquier otra operación se comporta como compra.
	assert.Equal(t, entity.DirectionIn, entity.Operation("OTRA").Direction())
}

func TestDirection_DeltaYOpuesta(t *testing.T) {
	assert.Equal(t, 5, entity.DirectionIn.Delta(5))
	assert.Equal(t, -5, entity.DirectionOut.Delta(5))
	assert.Equal(t, entity.DirectionIn, entity.DirectionOut.Opposite())
	assert.Equal(t, entity.DirectionOut, entity.DirectionIn.Opposite())
	assert.False(t, entity.Direction("ajuste").Valid())
}

func TestNewDocumentLine_PrecioSegunOperacion(t *testing.T) {
	p := &entity.Product{
		ID:            3,
		PurchasePrice: decimal.RequireFromString("10.00"),
		SalePrice:     decimal.RequireFromString("15.50"),
	}

	sale := entity.NewDocumentLine(1, p, 2, entity.OperationSale)
	assert.True(t, sale.UnitPrice.Equal(p.SalePrice))
	assert.True(t, sale.Subtotal.Equal(decimal.RequireFromString("31.00")))

	purchase := entity.NewDocumentLine(1, p, 2, entity.OperationPurchase)
	assert.True(t, purchase.UnitPrice.Equal(p.PurchasePrice))
	assert.True(t, purchase.Subtotal.Equal(decimal.RequireFromString("20.00")))

	doc := &entity.Document{Lines: []*entity.DocumentLine{sale, purchase}}
	assert.True(t, doc.Total().Equal(decimal.RequireFromString("51.00")))
}

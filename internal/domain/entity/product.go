package entity

import "github.com/shopspring/decimal"

// UnitMeasureDefault unidad de medida cuando no se informa.
const UnitMeasureDefault = "unidad"

// Product representa un producto del inventario.
// Stock solo cambia a través del libro de movimientos (ver inventory.StockLedger).
type Product struct {
	ID            int64
	Barcode       string // opcional, único cuando está presente
	Name          string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	Stock         int
	MinStock      int
	UnitMeasure   string
	CategoryID    int64
}

// PriceFor devuelve el precio unitario según la operación del documento:
// precio de venta para VENTA, precio de compra en cualquier otro caso.
func (p *Product) PriceFor(op Operation) decimal.Decimal {
	if op == OperationSale {
		return p.SalePrice
	}
	return p.PurchasePrice
}

// BelowMinimum indica si el stock actual está por debajo del mínimo configurado.
func (p *Product) BelowMinimum() bool {
	return p.Stock < p.MinStock
}

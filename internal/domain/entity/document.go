package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Operation clasifica un documento: compra o venta.
type Operation string

// Operaciones de documento.
const (
	OperationPurchase Operation = "COMPRA"
	OperationSale     Operation = "VENTA"
)

var upper = cases.Upper(language.Und)

// ParseOperation normaliza a mayúsculas y valida contra COMPRA | VENTA.
func ParseOperation(s string) (Operation, bool) {
	op := Operation(upper.String(strings.TrimSpace(s)))
	switch op {
	case OperationPurchase, OperationSale:
		return op, true
	}
	return op, false
}

// Direction dirección del movimiento que genera la operación:
// VENTA produce salida; cualquier otra operación produce entrada.
func (o Operation) Direction() Direction {
	if o == OperationSale {
		return DirectionOut
	}
	return DirectionIn
}

// Document cabecera de un documento de compra o venta.
type Document struct {
	ID         int64
	Type       string // Boleta, Factura, etc.
	Number     string // único
	Operation  Operation
	CustomerID *int64
	SupplierID *int64
	Date       time.Time
	Lines      []*DocumentLine
}

// Total suma de los subtotales de las líneas.
func (d *Document) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range d.Lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

// DocumentLine línea de detalle. El precio unitario se captura al escribir el documento.
type DocumentLine struct {
	ID         int64
	DocumentID int64
	ProductID  int64
	Quantity   int
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
}

// NewDocumentLine construye una línea calculando precio y subtotal desde el producto.
func NewDocumentLine(documentID int64, product *Product, quantity int, op Operation) *DocumentLine {
	price := product.PriceFor(op)
	return &DocumentLine{
		DocumentID: documentID,
		ProductID:  product.ID,
		Quantity:   quantity,
		UnitPrice:  price,
		Subtotal:   price.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

package inventory

import "github.com/jhoicas/facturacion-api/internal/domain/entity"

// LedgerTotals acumulados del libro de movimientos de un producto.
type LedgerTotals struct {
	In  int // suma de entradas
	Out int // suma de salidas
}

// Balance stock esperado según el libro: Σ entradas − Σ salidas.
func (t LedgerTotals) Balance() int {
	return t.In - t.Out
}

// Totals acumula una lista de movimientos (servicio de dominio, sin IO).
func Totals(movements []*entity.Movement) LedgerTotals {
	var t LedgerTotals
	for _, m := range movements {
		t = t.Add(m.Direction, m.Quantity)
	}
	return t
}

// Add suma una cantidad en la dirección indicada.
func (t LedgerTotals) Add(dir entity.Direction, quantity int) LedgerTotals {
	switch dir {
	case entity.DirectionIn:
		t.In += quantity
	case entity.DirectionOut:
		t.Out += quantity
	}
	return t
}

// Divergence diferencia entre el stock registrado y el saldo del libro.
// Cero significa que el producto está conciliado.
func Divergence(stock int, totals LedgerTotals) int {
	return stock - totals.Balance()
}

package entity

import "time"

// Direction sentido de un movimiento de stock.
type Direction string

// Direcciones de movimiento.
const (
	DirectionIn  Direction = "entrada"
	DirectionOut Direction = "salida"
)

// Valid indica si la dirección es entrada o salida.
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// Opposite devuelve la dirección contraria (usada para revertir efectos).
func (d Direction) Opposite() Direction {
	if d == DirectionOut {
		return DirectionIn
	}
	return DirectionOut
}

// Delta cantidad con signo que aplica la dirección sobre el stock.
func (d Direction) Delta(quantity int) int {
	if d == DirectionOut {
		return -quantity
	}
	return quantity
}

// Movement registro inmutable del libro de stock. Nunca se actualiza ni se elimina.
type Movement struct {
	ID         int64
	ProductID  int64
	Direction  Direction
	Quantity   int
	Date       time.Time
	Reference  string // UUID del lote que lo generó; vacío en movimientos manuales sin lote
	DocumentID *int64
}

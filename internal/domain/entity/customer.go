package entity

// Customer representa un cliente (destino de documentos de VENTA).
type Customer struct {
	ID       int64
	Name     string
	Document string // DNI, RUC, etc. Único.
	Address  string
	Phone    string
	Email    string
}

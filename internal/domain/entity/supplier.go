package entity

// Supplier representa un proveedor (origen de documentos de COMPRA).
type Supplier struct {
	ID      int64
	Name    string
	RUC     string // único
	Phone   string
	Address string
	Email   string
}

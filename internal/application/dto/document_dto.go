package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest línea solicitada: producto y cantidad. El precio lo fija el servidor.
type DocumentLineRequest struct {
	ProductID int64 `json:"producto_id" validate:"required,gt=0"`
	Quantity  int   `json:"cantidad" validate:"required,gt=0"`
}

// DocumentRequest cuerpo de POST /documentos y PUT /documentos/{id} (reemplazo total).
// Operation llega en cualquier capitalización y se normaliza a mayúsculas antes de validar.
type DocumentRequest struct {
	Type       string                `json:"tipo" validate:"required,min=1,max=50"`
	Number     string                `json:"numero" validate:"required,min=1,max=50"`
	CustomerID *int64                `json:"cliente_id" validate:"omitempty,gt=0"`
	SupplierID *int64                `json:"proveedor_id" validate:"omitempty,gt=0"`
	Operation  string                `json:"operacion" validate:"required,oneof=COMPRA VENTA"`
	Lines      []DocumentLineRequest `json:"detalles" validate:"required,dive"`
}

// DocumentLineResponse línea materializada con precio capturado.
type DocumentLineResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"producto_id"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// DocumentResponse documento completo (cabecera + líneas).
type DocumentResponse struct {
	ID         int64                  `json:"id"`
	Type       string                 `json:"tipo"`
	Number     string                 `json:"numero"`
	CustomerID *int64                 `json:"cliente_id"`
	SupplierID *int64                 `json:"proveedor_id"`
	Operation  string                 `json:"operacion"`
	Date       time.Time              `json:"fecha"`
	Lines      []DocumentLineResponse `json:"detalles"`
	Total      decimal.Decimal        `json:"total"`
}

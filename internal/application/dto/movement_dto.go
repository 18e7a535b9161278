package dto

import "time"

// CreateMovementRequest cuerpo de POST /movimientos (movimiento manual).
// Tipo se valida en el caso de uso: entrada | salida.
type CreateMovementRequest struct {
	ProductID int64  `json:"producto_id" validate:"required,gt=0"`
	Type      string `json:"tipo" validate:"required"`
	Quantity  int    `json:"cantidad" validate:"required,gt=0"`
}

// MovementResponse movimiento con el producto completo.
type MovementResponse struct {
	ID         int64            `json:"id"`
	ProductID  int64            `json:"producto_id"`
	Type       string           `json:"tipo"`
	Quantity   int              `json:"cantidad"`
	Date       time.Time        `json:"fecha"`
	Reference  string           `json:"referencia,omitempty"`
	DocumentID *int64           `json:"documento_id,omitempty"`
	Product    *ProductResponse `json:"producto"`
}

// MovementReportRequest filtros de GET /movimientos/reportes (tipo, rango de fechas).
type MovementReportRequest struct {
	Type string
	From *time.Time
	To   *time.Time
}

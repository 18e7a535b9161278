package inventory

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de stock: si fn retorna error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// MovementReportExporter genera la representación descargable del reporte de movimientos.
type MovementReportExporter interface {
	ExportMovements(ctx context.Context, rows []*dto.MovementResponse) ([]byte, error)
	ContentType() string
	FileExtension() string
}

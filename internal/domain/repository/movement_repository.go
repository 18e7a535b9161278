package repository

import (
	"context"
	"time"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// MovementFilter filtros para el reporte de movimientos.
type MovementFilter struct {
	Direction *entity.Direction
	From      *time.Time
	To        *time.Time
}

// MovementRepository define el puerto del libro de movimientos (solo inserción y lectura).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*entity.Movement, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Movement, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error)
	Report(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
}

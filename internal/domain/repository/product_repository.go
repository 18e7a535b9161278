package repository

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// GetForUpdate lee el producto bloqueando la fila hasta el fin de la transacción.
	// Solo tiene sentido con los repositorios que entrega un TxRunner.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// Update actualiza los datos del producto. No toca stock_actual (se maneja vía movimientos).
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	// ListBelowMinimum productos con stock_actual < stock_minimo.
	ListBelowMinimum(ctx context.Context) ([]*entity.Product, error)
	// CountByCategory cuántos productos referencian la categoría.
	CountByCategory(ctx context.Context, categoryID int64) (int, error)

	// AdjustStock suma delta (con signo) a stock_actual de forma atómica y devuelve el nuevo stock.
	// No aplica piso: el stock puede quedar negativo. ErrNotFound si el producto no existe.
	AdjustStock(ctx context.Context, id int64, delta int) (int, error)
	// DecreaseStockIfAvailable resta quantity solo si stock_actual >= quantity (actualización condicional).
	// ErrInsufficientStock si no alcanza, ErrNotFound si el producto no existe.
	DecreaseStockIfAvailable(ctx context.Context, id int64, quantity int) (int, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, codigo_barras, nombre, precio_compra, precio_venta, stock_actual, stock_minimo, unidad_medida, categoria_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p       entity.Product
		barcode *string
	)
	err := row.Scan(&p.ID, &barcode, &p.Name, &p.PurchasePrice, &p.SalePrice,
		&p.Stock, &p.MinStock, &p.UnitMeasure, &p.CategoryID)
	if err != nil {
		return nil, err
	}
	p.Barcode = deref(barcode)
	return &p, nil
}

func (r *ProductRepo) queryOne(ctx context.Context, op, where string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM productos WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r *ProductRepo) queryMany(ctx context.Context, op, sql string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Create persiste un nuevo producto. stock_actual se inserta tal cual viene (el caso de uso lo deja en 0).
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO productos (codigo_barras, nombre, precio_compra, precio_venta, stock_actual, stock_minimo, unidad_medida, categoria_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		nullable(p.Barcode), p.Name, p.PurchasePrice, p.SalePrice, p.Stock, p.MinStock, p.UnitMeasure, p.CategoryID,
	).Scan(&p.ID)
	if err != nil {
		return mapWriteError("insert producto", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.queryOne(ctx, "get producto", "id = $1", id)
}

// GetForUpdate obtiene un producto con SELECT ... FOR UPDATE.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.queryOne(ctx, "get producto for update", "id = $1 FOR UPDATE", id)
}

// GetByBarcode obtiene un producto por código de barras.
func (r *ProductRepo) GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return r.queryOne(ctx, "get producto by codigo_barras", "codigo_barras = $1", barcode)
}

// List lista productos con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.queryMany(ctx, "list productos",
		`SELECT `+productColumns+` FROM productos ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
}

// ListBelowMinimum productos con stock por debajo del mínimo.
func (r *ProductRepo) ListBelowMinimum(ctx context.Context) ([]*entity.Product, error) {
	return r.queryMany(ctx, "list productos bajo minimo",
		`SELECT `+productColumns+` FROM productos WHERE stock_actual < stock_minimo ORDER BY id`)
}

// Update actualiza un producto existente. No modifica stock_actual (se maneja vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE productos SET codigo_barras = $2, nombre = $3, precio_compra = $4, precio_venta = $5,
			stock_minimo = $6, unidad_medida = $7, categoria_id = $8
		WHERE id = $1`,
		p.ID, nullable(p.Barcode), p.Name, p.PurchasePrice, p.SalePrice, p.MinStock, p.UnitMeasure, p.CategoryID,
	)
	if err != nil {
		return mapWriteError("update producto", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto. Documentos o movimientos que lo referencian producen ErrConflict.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete producto", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByCategory cuenta productos de la categoría.
func (r *ProductRepo) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM productos WHERE categoria_id = $1`, categoryID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count productos: %w", err)
	}
	return n, nil
}

// AdjustStock incremento atómico sin piso.
func (r *ProductRepo) AdjustStock(ctx context.Context, id int64, delta int) (int, error) {
	var stock int
	err := r.q.QueryRow(ctx,
		`UPDATE productos SET stock_actual = stock_actual + $2 WHERE id = $1 RETURNING stock_actual`,
		id, delta,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	return stock, nil
}

// DecreaseStockIfAvailable resta solo si stock_actual >= quantity. Sin filas: se distingue entre
// producto inexistente y stock insuficiente.
func (r *ProductRepo) DecreaseStockIfAvailable(ctx context.Context, id int64, quantity int) (int, error) {
	var stock int
	err := r.q.QueryRow(ctx,
		`UPDATE productos SET stock_actual = stock_actual - $2
		 WHERE id = $1 AND stock_actual >= $2 RETURNING stock_actual`,
		id, quantity,
	).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("decrease stock: %w", err)
	}
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if p == nil {
		return 0, domain.ErrNotFound
	}
	return p.Stock, domain.ErrInsufficientStock
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos (solo INSERT y SELECT).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, producto_id, tipo, cantidad, fecha, referencia, documento_id`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m   entity.Movement
		dir string
		ref *string
	)
	if err := row.Scan(&m.ID, &m.ProductID, &dir, &m.Quantity, &m.Date, &ref, &m.DocumentID); err != nil {
		return nil, err
	}
	m.Direction = entity.Direction(dir)
	m.Reference = deref(ref)
	return &m, nil
}

// Create registra un movimiento.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO movimientos (producto_id, tipo, cantidad, fecha, referencia, documento_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		m.ProductID, string(m.Direction), m.Quantity, m.Date, nullable(m.Reference), m.DocumentID,
	).Scan(&m.ID)
	if err != nil {
		return mapWriteError("insert movimiento", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movimientos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return m, nil
}

// List en orden de registro.
func (r *MovementRepo) List(ctx context.Context, limit, offset int) ([]*entity.Movement, error) {
	return r.query(ctx, `SELECT `+movementColumns+` FROM movimientos ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByProduct movimientos de un producto.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error) {
	return r.query(ctx, `SELECT `+movementColumns+` FROM movimientos WHERE producto_id = $1 ORDER BY id`, productID)
}

// Report aplica los filtros opcionales de tipo y rango de fechas (inclusivo).
func (r *MovementRepo) Report(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var (
		conds []string
		args  []any
	)
	if f.Direction != nil {
		args = append(args, string(*f.Direction))
		conds = append(conds, fmt.Sprintf("tipo = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("fecha >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("fecha <= $%d", len(args)))
	}
	sql := `SELECT ` + movementColumns + ` FROM movimientos`
	if len(conds) > 0 {
		sql += ` WHERE ` + strings.Join(conds, " AND ")
	}
	return r.query(ctx, sql+` ORDER BY fecha, id`, args...)
}

func (r *MovementRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

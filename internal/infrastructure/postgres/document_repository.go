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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (cabecera + detalle).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `id, tipo, numero, operacion, cliente_id, proveedor_id, fecha`

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var (
		d  entity.Document
		op string
	)
	if err := row.Scan(&d.ID, &d.Type, &d.Number, &op, &d.CustomerID, &d.SupplierID, &d.Date); err != nil {
		return nil, err
	}
	d.Operation = entity.Operation(op)
	return &d, nil
}

// Create inserta la cabecera y asigna ID. La fecha viene del caso de uso.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO documentos (tipo, numero, operacion, cliente_id, proveedor_id, fecha)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		d.Type, d.Number, string(d.Operation), d.CustomerID, d.SupplierID, d.Date,
	).Scan(&d.ID)
	if err != nil {
		return mapWriteError("insert documento", err)
	}
	return nil
}

// CreateLine inserta una línea con su precio capturado.
func (r *DocumentRepo) CreateLine(ctx context.Context, l *entity.DocumentLine) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO detalle_documentos (documento_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		l.DocumentID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal,
	).Scan(&l.ID)
	if err != nil {
		return mapWriteError("insert detalle", err)
	}
	return nil
}

// GetByID cabecera con líneas.
func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM documentos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get documento: %w", err)
	}
	if d.Lines, err = r.GetLines(ctx, id); err != nil {
		return nil, err
	}
	return d, nil
}

// List lista cabeceras; las líneas se cargan por separado (GetLines).
func (r *DocumentRepo) List(ctx context.Context, limit, offset int) ([]*entity.Document, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+documentColumns+` FROM documentos ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// GetLines líneas de un documento.
func (r *DocumentRepo) GetLines(ctx context.Context, documentID int64) ([]*entity.DocumentLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, documento_id, producto_id, cantidad, precio_unitario, subtotal
		FROM detalle_documentos WHERE documento_id = $1 ORDER BY id`, documentID)
	if err != nil {
		return nil, fmt.Errorf("list detalle: %w", err)
	}
	defer rows.Close()
	lines := make([]*entity.DocumentLine, 0)
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// UpdateHeader sobrescribe la cabecera. La fecha original se conserva.
func (r *DocumentRepo) UpdateHeader(ctx context.Context, d *entity.Document) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE documentos SET tipo = $2, numero = $3, operacion = $4, cliente_id = $5, proveedor_id = $6
		WHERE id = $1`,
		d.ID, d.Type, d.Number, string(d.Operation), d.CustomerID, d.SupplierID)
	if err != nil {
		return mapWriteError("update documento", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteLines elimina todas las líneas del documento.
func (r *DocumentRepo) DeleteLines(ctx context.Context, documentID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM detalle_documentos WHERE documento_id = $1`, documentID); err != nil {
		return fmt.Errorf("delete detalle: %w", err)
	}
	return nil
}

// Delete elimina el documento; las líneas caen por ON DELETE CASCADE.
func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM documentos WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete documento", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para Document y sus líneas.
type DocumentRepository interface {
	// Create persiste la cabecera y asigna ID. ErrDuplicate si el número ya existe.
	Create(ctx context.Context, doc *entity.Document) error
	CreateLine(ctx context.Context, line *entity.DocumentLine) error
	// GetByID devuelve la cabecera con sus líneas, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Document, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Document, error)
	GetLines(ctx context.Context, documentID int64) ([]*entity.DocumentLine, error)
	// UpdateHeader reemplaza tipo, número, cliente, proveedor y operación.
	UpdateHeader(ctx context.Context, doc *entity.Document) error
	DeleteLines(ctx context.Context, documentID int64) error
	// Delete elimina el documento y, en cascada, sus líneas.
	Delete(ctx context.Context, id int64) error
}

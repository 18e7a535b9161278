package memory

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// DocumentRepository implementa repository.DocumentRepository.
type DocumentRepository struct{ g guard }

// NewDocumentRepository crea el repositorio.
func NewDocumentRepository(s *Store) *DocumentRepository { return &DocumentRepository{guard{s: s}} }

// Create asigna ID. ErrDuplicate si el número ya existe; ErrConflict si cliente o proveedor no existen.
func (r *DocumentRepository) Create(_ context.Context, d *entity.Document) error {
	defer r.g.lock()()
	if err := r.check(d); err != nil {
		return err
	}
	d.ID = r.g.s.nextID()
	header := *d
	header.Lines = nil
	r.g.s.documents[d.ID] = header
	return nil
}

func (r *DocumentRepository) check(d *entity.Document) error {
	for id, existing := range r.g.s.documents {
		if id != d.ID && existing.Number == d.Number {
			return domain.ErrDuplicate
		}
	}
	if d.CustomerID != nil {
		if _, ok := r.g.s.customers[*d.CustomerID]; !ok {
			return domain.ErrConflict
		}
	}
	if d.SupplierID != nil {
		if _, ok := r.g.s.suppliers[*d.SupplierID]; !ok {
			return domain.ErrConflict
		}
	}
	return nil
}

// CreateLine asigna ID a la línea. ErrConflict si documento o producto no existen.
func (r *DocumentRepository) CreateLine(_ context.Context, l *entity.DocumentLine) error {
	defer r.g.lock()()
	if _, ok := r.g.s.documents[l.DocumentID]; !ok {
		return domain.ErrConflict
	}
	if _, ok := r.g.s.products[l.ProductID]; !ok {
		return domain.ErrConflict
	}
	l.ID = r.g.s.nextID()
	r.g.s.lines[l.DocumentID] = append(r.g.s.lines[l.DocumentID], *l)
	return nil
}

// GetByID cabecera con líneas; (nil, nil) si no existe.
func (r *DocumentRepository) GetByID(_ context.Context, id int64) (*entity.Document, error) {
	defer r.g.lock()()
	d, ok := r.g.s.documents[id]
	if !ok {
		return nil, nil
	}
	d.Lines = r.linesOf(id)
	return &d, nil
}

// List con líneas, ordenado por ID.
func (r *DocumentRepository) List(_ context.Context, limit, offset int) ([]*entity.Document, error) {
	defer r.g.lock()()
	list := page(sortedValues(r.g.s.documents), limit, offset)
	for _, d := range list {
		d.Lines = r.linesOf(d.ID)
	}
	return list, nil
}

// GetLines líneas del documento en orden de inserción.
func (r *DocumentRepository) GetLines(_ context.Context, documentID int64) ([]*entity.DocumentLine, error) {
	defer r.g.lock()()
	return r.linesOf(documentID), nil
}

func (r *DocumentRepository) linesOf(documentID int64) []*entity.DocumentLine {
	stored := r.g.s.lines[documentID]
	out := make([]*entity.DocumentLine, 0, len(stored))
	for i := range stored {
		l := stored[i]
		out = append(out, &l)
	}
	return out
}

// UpdateHeader reemplaza la cabecera (conserva la fecha original).
func (r *DocumentRepository) UpdateHeader(_ context.Context, d *entity.Document) error {
	defer r.g.lock()()
	current, ok := r.g.s.documents[d.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.check(d); err != nil {
		return err
	}
	current.Type = d.Type
	current.Number = d.Number
	current.Operation = d.Operation
	current.CustomerID = d.CustomerID
	current.SupplierID = d.SupplierID
	r.g.s.documents[d.ID] = current
	return nil
}

// DeleteLines elimina todas las líneas del documento.
func (r *DocumentRepository) DeleteLines(_ context.Context, documentID int64) error {
	defer r.g.lock()()
	delete(r.g.s.lines, documentID)
	return nil
}

// Delete elimina cabecera y líneas.
func (r *DocumentRepository) Delete(_ context.Context, id int64) error {
	defer r.g.lock()()
	if _, ok := r.g.s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.g.s.documents, id)
	delete(r.g.s.lines, id)
	return nil
}

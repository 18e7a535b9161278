package memory

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// MovementRepository implementa repository.MovementRepository (solo inserción).
type MovementRepository struct{ g guard }

// NewMovementRepository crea el repositorio.
func NewMovementRepository(s *Store) *MovementRepository { return &MovementRepository{guard{s: s}} }

// Create asigna ID. ErrConflict si el producto no existe (FK).
func (r *MovementRepository) Create(_ context.Context, m *entity.Movement) error {
	defer r.g.lock()()
	if _, ok := r.g.s.products[m.ProductID]; !ok {
		return domain.ErrConflict
	}
	m.ID = r.g.s.nextID()
	r.g.s.movements = append(r.g.s.movements, *m)
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *MovementRepository) GetByID(_ context.Context, id int64) (*entity.Movement, error) {
	defer r.g.lock()()
	for _, m := range r.g.s.movements {
		if m.ID == id {
			out := m
			return &out, nil
		}
	}
	return nil, nil
}

// List en orden de registro.
func (r *MovementRepository) List(_ context.Context, limit, offset int) ([]*entity.Movement, error) {
	defer r.g.lock()()
	return page(r.filter(func(*entity.Movement) bool { return true }), limit, offset), nil
}

// ListByProduct movimientos de un producto.
func (r *MovementRepository) ListByProduct(_ context.Context, productID int64) ([]*entity.Movement, error) {
	defer r.g.lock()()
	return r.filter(func(m *entity.Movement) bool { return m.ProductID == productID }), nil
}

// Report filtra por dirección y rango de fechas inclusivo.
func (r *MovementRepository) Report(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	defer r.g.lock()()
	return r.filter(func(m *entity.Movement) bool {
		if f.Direction != nil && m.Direction != *f.Direction {
			return false
		}
		if f.From != nil && m.Date.Before(*f.From) {
			return false
		}
		if f.To != nil && m.Date.After(*f.To) {
			return false
		}
		return true
	}), nil
}

func (r *MovementRepository) filter(keep func(*entity.Movement) bool) []*entity.Movement {
	out := make([]*entity.Movement, 0)
	for i := range r.g.s.movements {
		m := r.g.s.movements[i]
		if keep(&m) {
			out = append(out, &m)
		}
	}
	return out
}

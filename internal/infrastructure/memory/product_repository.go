package memory

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// ProductRepository implementa repository.ProductRepository.
type ProductRepository struct{ g guard }

// NewProductRepository crea el repositorio.
func NewProductRepository(s *Store) *ProductRepository { return &ProductRepository{guard{s: s}} }

// Create asigna ID. Igual que la FK en Postgres, la categoría debe existir (ErrConflict).
func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	defer r.g.lock()()
	if err := r.check(p); err != nil {
		return err
	}
	p.ID = r.g.s.nextID()
	r.g.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepository) check(p *entity.Product) error {
	if _, ok := r.g.s.categories[p.CategoryID]; !ok {
		return domain.ErrConflict
	}
	if p.Barcode == "" {
		return nil
	}
	for id, existing := range r.g.s.products {
		if id != p.ID && existing.Barcode == p.Barcode {
			return domain.ErrDuplicate
		}
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepository) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	defer r.g.lock()()
	p, ok := r.g.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// GetForUpdate igual que GetByID: dentro de una transacción el mutex ya está tomado.
func (r *ProductRepository) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetByBarcode búsqueda exacta.
func (r *ProductRepository) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	defer r.g.lock()()
	for _, p := range r.g.s.products {
		if p.Barcode == barcode {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

// List ordenado por ID.
func (r *ProductRepository) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	defer r.g.lock()()
	return page(sortedValues(r.g.s.products), limit, offset), nil
}

// ListBelowMinimum productos con stock por debajo del mínimo.
func (r *ProductRepository) ListBelowMinimum(_ context.Context) ([]*entity.Product, error) {
	defer r.g.lock()()
	out := make([]*entity.Product, 0)
	for _, p := range sortedValues(r.g.s.products) {
		if p.BelowMinimum() {
			out = append(out, p)
		}
	}
	return out, nil
}

// Update actualiza todo salvo stock_actual.
func (r *ProductRepository) Update(_ context.Context, p *entity.Product) error {
	defer r.g.lock()()
	current, ok := r.g.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if err := r.check(p); err != nil {
		return err
	}
	updated := *p
	updated.Stock = current.Stock
	r.g.s.products[p.ID] = updated
	return nil
}

// Delete ErrConflict si líneas de documento o movimientos referencian el producto.
func (r *ProductRepository) Delete(_ context.Context, id int64) error {
	defer r.g.lock()()
	if _, ok := r.g.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	for _, m := range r.g.s.movements {
		if m.ProductID == id {
			return domain.ErrConflict
		}
	}
	for _, lines := range r.g.s.lines {
		for _, l := range lines {
			if l.ProductID == id {
				return domain.ErrConflict
			}
		}
	}
	delete(r.g.s.products, id)
	return nil
}

// CountByCategory cuenta productos de la categoría.
func (r *ProductRepository) CountByCategory(_ context.Context, categoryID int64) (int, error) {
	defer r.g.lock()()
	n := 0
	for _, p := range r.g.s.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// AdjustStock suma delta sin piso.
func (r *ProductRepository) AdjustStock(_ context.Context, id int64, delta int) (int, error) {
	defer r.g.lock()()
	p, ok := r.g.s.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	p.Stock += delta
	r.g.s.products[id] = p
	return p.Stock, nil
}

// DecreaseStockIfAvailable resta solo si alcanza.
func (r *ProductRepository) DecreaseStockIfAvailable(_ context.Context, id int64, quantity int) (int, error) {
	defer r.g.lock()()
	p, ok := r.g.s.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if p.Stock < quantity {
		return p.Stock, domain.ErrInsufficientStock
	}
	p.Stock -= quantity
	r.g.s.products[id] = p
	return p.Stock, nil
}

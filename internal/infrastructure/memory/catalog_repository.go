package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// CategoryRepository implementa repository.CategoryRepository.
type CategoryRepository struct{ g guard }

// NewCategoryRepository crea el repositorio.
func NewCategoryRepository(s *Store) *CategoryRepository { return &CategoryRepository{guard{s: s}} }

// Create asigna ID. ErrDuplicate si el nombre ya existe.
func (r *CategoryRepository) Create(_ context.Context, c *entity.Category) error {
	defer r.g.lock()()
	for _, existing := range r.g.s.categories {
		if existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	c.ID = r.g.s.nextID()
	r.g.s.categories[c.ID] = *c
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CategoryRepository) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	defer r.g.lock()()
	c, ok := r.g.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetByName búsqueda exacta.
func (r *CategoryRepository) GetByName(_ context.Context, name string) (*entity.Category, error) {
	defer r.g.lock()()
	for _, c := range r.g.s.categories {
		if c.Name == name {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

// List ordenado por ID.
func (r *CategoryRepository) List(_ context.Context, limit, offset int) ([]*entity.Category, error) {
	defer r.g.lock()()
	return page(sortedValues(r.g.s.categories), limit, offset), nil
}

// Update ErrNotFound si no existe; ErrDuplicate si el nombre lo usa otra categoría.
func (r *CategoryRepository) Update(_ context.Context, c *entity.Category) error {
	defer r.g.lock()()
	if _, ok := r.g.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.g.s.categories {
		if id != c.ID && existing.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	r.g.s.categories[c.ID] = *c
	return nil
}

// Delete ErrConflict si algún producto referencia la categoría.
func (r *CategoryRepository) Delete(_ context.Context, id int64) error {
	defer r.g.lock()()
	if _, ok := r.g.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.g.s.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.g.s.categories, id)
	return nil
}

// SupplierRepository implementa repository.SupplierRepository.
type SupplierRepository struct{ g guard }

// NewSupplierRepository crea el repositorio.
func NewSupplierRepository(s *Store) *SupplierRepository { return &SupplierRepository{guard{s: s}} }

// Create asigna ID. ErrDuplicate si el RUC ya existe.
func (r *SupplierRepository) Create(_ context.Context, s *entity.Supplier) error {
	defer r.g.lock()()
	for _, existing := range r.g.s.suppliers {
		if existing.RUC == s.RUC {
			return domain.ErrDuplicate
		}
	}
	s.ID = r.g.s.nextID()
	r.g.s.suppliers[s.ID] = *s
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *SupplierRepository) GetByID(_ context.Context, id int64) (*entity.Supplier, error) {
	defer r.g.lock()()
	s, ok := r.g.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// GetByRUC búsqueda exacta.
func (r *SupplierRepository) GetByRUC(_ context.Context, ruc string) (*entity.Supplier, error) {
	defer r.g.lock()()
	for _, s := range r.g.s.suppliers {
		if s.RUC == ruc {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

// List ordenado por ID.
func (r *SupplierRepository) List(_ context.Context, limit, offset int) ([]*entity.Supplier, error) {
	defer r.g.lock()()
	return page(sortedValues(r.g.s.suppliers), limit, offset), nil
}

// Update ErrNotFound si no existe.
func (r *SupplierRepository) Update(_ context.Context, s *entity.Supplier) error {
	defer r.g.lock()()
	if _, ok := r.g.s.suppliers[s.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.g.s.suppliers {
		if id != s.ID && existing.RUC == s.RUC {
			return domain.ErrDuplicate
		}
	}
	r.g.s.suppliers[s.ID] = *s
	return nil
}

// Delete ErrConflict si algún documento referencia al proveedor.
func (r *SupplierRepository) Delete(_ context.Context, id int64) error {
	defer r.g.lock()()
	if _, ok := r.g.s.suppliers[id]; !ok {
		return domain.ErrNotFound
	}
	for _, d := range r.g.s.documents {
		if d.SupplierID != nil && *d.SupplierID == id {
			return domain.ErrConflict
		}
	}
	delete(r.g.s.suppliers, id)
	return nil
}

// CustomerRepository implementa repository.CustomerRepository.
type CustomerRepository struct{ g guard }

// NewCustomerRepository crea el repositorio.
func NewCustomerRepository(s *Store) *CustomerRepository { return &CustomerRepository{guard{s: s}} }

// Create asigna ID. ErrDuplicate si el documento de identidad ya existe.
func (r *CustomerRepository) Create(_ context.Context, c *entity.Customer) error {
	defer r.g.lock()()
	for _, existing := range r.g.s.customers {
		if existing.Document == c.Document {
			return domain.ErrDuplicate
		}
	}
	c.ID = r.g.s.nextID()
	r.g.s.customers[c.ID] = *c
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CustomerRepository) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	defer r.g.lock()()
	c, ok := r.g.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetByDocument búsqueda exacta.
func (r *CustomerRepository) GetByDocument(_ context.Context, document string) (*entity.Customer, error) {
	defer r.g.lock()()
	for _, c := range r.g.s.customers {
		if c.Document == document {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

// List ordenado por ID.
func (r *CustomerRepository) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	defer r.g.lock()()
	return page(sortedValues(r.g.s.customers), limit, offset), nil
}

// Update ErrNotFound si no existe.
func (r *CustomerRepository) Update(_ context.Context, c *entity.Customer) error {
	defer r.g.lock()()
	if _, ok := r.g.s.customers[c.ID]; !ok {
		return domain.ErrNotFound
	}
	for id, existing := range r.g.s.customers {
		if id != c.ID && existing.Document == c.Document {
			return domain.ErrDuplicate
		}
	}
	r.g.s.customers[c.ID] = *c
	return nil
}

// Delete ErrConflict si algún documento referencia al cliente.
func (r *CustomerRepository) Delete(_ context.Context, id int64) error {
	defer r.g.lock()()
	if _, ok := r.g.s.customers[id]; !ok {
		return domain.ErrNotFound
	}
	for _, d := range r.g.s.documents {
		if d.CustomerID != nil && *d.CustomerID == id {
			return domain.ErrConflict
		}
	}
	delete(r.g.s.customers, id)
	return nil
}

// sortedValues copia los valores ordenados por clave y devuelve punteros a las copias.
func sortedValues[V any](m map[int64]V) []*V {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := make([]*V, 0, len(keys))
	for _, k := range keys {
		v := m[k]
		out = append(out, &v)
	}
	return out
}

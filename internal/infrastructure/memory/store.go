// Package memory implementa los repositorios en memoria. Se usa con STORAGE_DRIVER=memory y como doble en tests.
package memory

import (
	"sync"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

// Store estado completo protegido por un único mutex.
// Las transacciones toman el mutex durante toda la función y restauran una copia si fallan.
type Store struct {
	mu sync.Mutex

	seq        int64
	categories map[int64]entity.Category
	products   map[int64]entity.Product
	suppliers  map[int64]entity.Supplier
	customers  map[int64]entity.Customer
	documents  map[int64]entity.Document // solo cabecera
	lines      map[int64][]entity.DocumentLine
	movements  []entity.Movement
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		categories: make(map[int64]entity.Category),
		products:   make(map[int64]entity.Product),
		suppliers:  make(map[int64]entity.Supplier),
		customers:  make(map[int64]entity.Customer),
		documents:  make(map[int64]entity.Document),
		lines:      make(map[int64][]entity.DocumentLine),
	}
}

// nextID secuencia global; los IDs son únicos entre tablas, igual de válidos que BIGSERIAL.
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

type snapshot struct {
	seq        int64
	categories map[int64]entity.Category
	products   map[int64]entity.Product
	suppliers  map[int64]entity.Supplier
	customers  map[int64]entity.Customer
	documents  map[int64]entity.Document
	lines      map[int64][]entity.DocumentLine
	movements  []entity.Movement
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		seq:        s.seq,
		categories: cloneMap(s.categories),
		products:   cloneMap(s.products),
		suppliers:  cloneMap(s.suppliers),
		customers:  cloneMap(s.customers),
		documents:  cloneMap(s.documents),
		lines:      make(map[int64][]entity.DocumentLine, len(s.lines)),
		movements:  append([]entity.Movement(nil), s.movements...),
	}
	for k, v := range s.lines {
		snap.lines[k] = append([]entity.DocumentLine(nil), v...)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.seq = snap.seq
	s.categories = snap.categories
	s.products = snap.products
	s.suppliers = snap.suppliers
	s.customers = snap.customers
	s.documents = snap.documents
	s.lines = snap.lines
	s.movements = snap.movements
}

func cloneMap[V any](m map[int64]V) map[int64]V {
	out := make(map[int64]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// guard bloquea el store salvo que la operación corra dentro de una transacción (que ya tiene el mutex).
type guard struct {
	s    *Store
	inTx bool
}

func (g guard) lock() func() {
	if g.inTx {
		return func() {}
	}
	g.s.mu.Lock()
	return g.s.mu.Unlock
}

// page aplica offset/limit sobre una lista ya ordenada.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

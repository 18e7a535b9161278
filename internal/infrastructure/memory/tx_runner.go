package memory

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/application/inventory"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner            = (*TxRunner)(nil)
	_ billing.BillingTxRunner       = (*TxRunner)(nil)
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
	_ repository.ProductRepository  = (*ProductRepository)(nil)
	_ repository.SupplierRepository = (*SupplierRepository)(nil)
	_ repository.CustomerRepository = (*CustomerRepository)(nil)
	_ repository.DocumentRepository = (*DocumentRepository)(nil)
	_ repository.MovementRepository = (*MovementRepository)(nil)
)

// TxRunner implementa inventory.TxRunner y billing.BillingTxRunner sobre el Store.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) begin() (guard, func(err error)) {
	r.s.mu.Lock()
	snap := r.s.snapshot()
	return guard{s: r.s, inTx: true}, func(err error) {
		if err != nil {
			r.s.restore(snap)
		}
		r.s.mu.Unlock()
	}
}

// Run ejecuta fn con repositorios de productos y movimientos; rollback si fn retorna error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	g, end := r.begin()
	defer func() { end(err) }()
	return fn(&ProductRepository{g}, &MovementRepository{g})
}

// RunDocument ejecuta fn con repositorios de documentos, productos y movimientos; rollback si fn retorna error.
func (r *TxRunner) RunDocument(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	g, end := r.begin()
	defer func() { end(err) }()
	return fn(&DocumentRepository{g}, &ProductRepository{g}, &MovementRepository{g})
}

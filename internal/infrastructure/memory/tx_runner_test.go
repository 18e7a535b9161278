package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

func seed(t *testing.T, s *Store, stock int) *entity.Product {
	t.Helper()
	ctx := context.Background()
	cat := &entity.Category{Name: "General"}
	require.NoError(t, NewCategoryRepository(s).Create(ctx, cat))
	p := &entity.Product{Name: "Harina", Stock: stock, CategoryID: cat.ID}
	require.NoError(t, NewProductRepository(s).Create(ctx, p))
	return p
}

func TestTxRunner_RollbackRestauraTodo(t *testing.T) {
	s := NewStore()
	p := seed(t, s, 10)
	ctx := context.Background()
	boom := errors.New("falla")

	err := NewTxRunner(s).RunDocument(ctx, func(
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error {
		doc := &entity.Document{Type: "factura", Number: "F-1", Operation: entity.OperationSale}
		require.NoError(t, docRepo.Create(ctx, doc))
		_, err := productRepo.AdjustStock(ctx, p.ID, -4)
		require.NoError(t, err)
		require.NoError(t, movRepo.Create(ctx, &entity.Movement{ProductID: p.ID, Direction: entity.DirectionOut, Quantity: 4}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := NewProductRepository(s).GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Stock)
	docs, _ := NewDocumentRepository(s).List(ctx, 0, 0)
	assert.Empty(t, docs)
	movs, _ := NewMovementRepository(s).List(ctx, 0, 0)
	assert.Empty(t, movs)
}

func TestTxRunner_CommitConserva(t *testing.T) {
	s := NewStore()
	p := seed(t, s, 1)
	ctx := context.Background()

	err := NewTxRunner(s).Run(ctx, func(productRepo repository.ProductRepository, _ repository.MovementRepository) error {
		_, err := productRepo.AdjustStock(ctx, p.ID, 5)
		return err
	})
	require.NoError(t, err)
	got, _ := NewProductRepository(s).GetByID(ctx, p.ID)
	assert.Equal(t, 6, got.Stock)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewTxRunner(s).Run(ctx, func(repository.ProductRepository, repository.MovementRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestProductRepository_DecreaseStockIfAvailable(t *testing.T) {
	s := NewStore()
	p := seed(t, s, 3)
	repo := NewProductRepository(s)
	ctx := context.Background()

	stock, err := repo.DecreaseStockIfAvailable(ctx, p.ID, 4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, stock)

	stock, err = repo.DecreaseStockIfAvailable(ctx, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)

	_, err = repo.DecreaseStockIfAvailable(ctx, 999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCategoryRepository_DeleteReferenciada(t *testing.T) {
	s := NewStore()
	p := seed(t, s, 0)
	assert.ErrorIs(t, NewCategoryRepository(s).Delete(context.Background(), p.CategoryID), domain.ErrConflict)
}

func TestDocumentRepository_NumeroDuplicado(t *testing.T) {
	s := NewStore()
	repo := NewDocumentRepository(s)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Document{Type: "factura", Number: "F-1", Operation: entity.OperationSale}))
	err := repo.Create(ctx, &entity.Document{Type: "factura", Number: "F-1", Operation: entity.OperationPurchase})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

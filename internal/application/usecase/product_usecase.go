package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/application/inventory"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Stock se maneja vía movimientos:
// el stock inicial y cualquier cambio de stock_actual se registran en el libro.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	txRunner     inventory.TxRunner
	ledger       *inventory.StockLedger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	txRunner inventory.TxRunner,
	ledger *inventory.StockLedger,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, txRunner: txRunner, ledger: ledger}
}

// Create crea un producto. Un stock inicial mayor a cero se registra como entrada.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Stock < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	barcode := dto.Deref(in.Barcode)
	if err := uc.checkBarcode(ctx, barcode, 0); err != nil {
		return nil, err
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = entity.UnitMeasureDefault
	}

	product := &entity.Product{
		Barcode:       barcode,
		Name:          in.Name,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		MinStock:      in.MinStock,
		UnitMeasure:   in.UnitMeasure,
		CategoryID:    in.CategoryID,
	}
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		stock, err := uc.postStockChange(ctx, productRepo, movRepo, product.ID, 0, in.Stock)
		if err != nil {
			return err
		}
		product.Stock = stock
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, category), nil
}

// GetByID obtiene un producto con su categoría.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	category, err := uc.categoryRepo.GetByID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, category), nil
}

// List lista productos con paginación skip/limit.
func (uc *ProductUseCase) List(ctx context.Context, skip, limit int) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, limit, skip)
	if err != nil {
		return nil, err
	}
	return uc.withCategories(ctx, list)
}

// ListBelowMinimum productos con stock_actual por debajo de stock_minimo (reposición).
func (uc *ProductUseCase) ListBelowMinimum(ctx context.Context) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	return uc.withCategories(ctx, list)
}

// Update reemplaza todos los campos (PUT). Si stock_actual cambia, la diferencia se registra como movimiento.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if in.Stock < 0 || in.MinStock < 0 || in.PurchasePrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	category, err := uc.category(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	barcode := dto.Deref(in.Barcode)
	if err := uc.checkBarcode(ctx, barcode, id); err != nil {
		return nil, err
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = entity.UnitMeasureDefault
	}
	product.Barcode = barcode
	product.Name = in.Name
	product.PurchasePrice = in.PurchasePrice
	product.SalePrice = in.SalePrice
	product.MinStock = in.MinStock
	product.UnitMeasure = in.UnitMeasure
	product.CategoryID = in.CategoryID

	if err := uc.save(ctx, product, &in.Stock); err != nil {
		return nil, err
	}
	return toProductResponse(product, category), nil
}

// Patch aplica solo los campos presentes (PATCH).
func (uc *ProductUseCase) Patch(ctx context.Context, id int64, in dto.PatchProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	category, err := uc.category(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}
	if in.Barcode != nil {
		if err := uc.checkBarcode(ctx, *in.Barcode, id); err != nil {
			return nil, err
		}
		product.Barcode = *in.Barcode
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if err := uc.save(ctx, product, in.Stock); err != nil {
		return nil, err
	}
	return toProductResponse(product, category), nil
}

// Delete elimina un producto. ErrConflict si documentos o movimientos lo referencian.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// save actualiza los datos y, si target no es nil y difiere del stock actual, registra la diferencia.
// El stock de referencia se relee con la fila bloqueada dentro de la transacción.
func (uc *ProductUseCase) save(ctx context.Context, product *entity.Product, target *int) error {
	if target != nil && *target < 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		locked, err := productRepo.GetForUpdate(ctx, product.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		product.Stock = locked.Stock
		if target == nil {
			return nil
		}
		stock, err := uc.postStockChange(ctx, productRepo, movRepo, product.ID, locked.Stock, *target)
		if err != nil {
			return err
		}
		product.Stock = stock
		return nil
	})
}

// postStockChange registra la entrada o salida que lleva el stock de current a target
// y devuelve el stock que reporta el almacenamiento.
func (uc *ProductUseCase) postStockChange(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	productID int64, current, target int,
) (int, error) {
	posting := inventory.Posting{Reference: uuid.New().String()}
	stock, posted, err := uc.ledger.PostDelta(ctx, productRepo, movRepo, productID, target-current, posting)
	if err != nil {
		return 0, err
	}
	if !posted {
		return current, nil
	}
	return stock, nil
}

func (uc *ProductUseCase) get(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func (uc *ProductUseCase) category(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// checkBarcode el código de barras es opcional; si viene, no puede repetirse.
func (uc *ProductUseCase) checkBarcode(ctx context.Context, barcode string, selfID int64) error {
	if barcode == "" {
		return nil
	}
	existing, err := uc.repo.GetByBarcode(ctx, barcode)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrDuplicate
	}
	return nil
}

func (uc *ProductUseCase) withCategories(ctx context.Context, list []*entity.Product) ([]*dto.ProductResponse, error) {
	categories := make(map[int64]*entity.Category)
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		c, ok := categories[p.CategoryID]
		if !ok {
			var err error
			c, err = uc.categoryRepo.GetByID(ctx, p.CategoryID)
			if err != nil {
				return nil, err
			}
			categories[p.CategoryID] = c
		}
		out = append(out, toProductResponse(p, c))
	}
	return out, nil
}

func toProductResponse(p *entity.Product, c *entity.Category) *dto.ProductResponse {
	resp := dto.FromProduct(p)
	if resp != nil {
		resp.Category = dto.FromCategory(c)
	}
	return resp
}

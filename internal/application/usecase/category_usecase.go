package usecase

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, productRepo: productRepo}
}

// Create crea una categoría. ErrDuplicate si el nombre ya existe.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkName(ctx, in.Name, 0); err != nil {
		return nil, err
	}
	c := &entity.Category{Name: in.Name, Description: dto.Deref(in.Description)}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return dto.FromCategory(c), nil
}

// GetByID obtiene una categoría; ErrNotFound si no existe.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromCategory(c), nil
}

// List lista categorías con paginación skip/limit.
func (uc *CategoryUseCase) List(ctx context.Context, skip, limit int) ([]*dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx, limit, skip)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCategory(c))
	}
	return out, nil
}

// Update reemplaza nombre y descripción (PUT).
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkName(ctx, in.Name, id); err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Description = dto.Deref(in.Description)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return dto.FromCategory(c), nil
}

// Patch aplica solo los campos presentes (PATCH).
func (uc *CategoryUseCase) Patch(ctx context.Context, id int64, in dto.PatchCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if err := uc.checkName(ctx, *in.Name, id); err != nil {
			return nil, err
		}
		c.Name = *in.Name
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return dto.FromCategory(c), nil
}

// Delete elimina una categoría sin productos. ErrConflict si algún producto la referencia.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	n, err := uc.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CategoryUseCase) get(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// checkName ErrDuplicate si otra categoría (distinta de selfID) ya usa el nombre.
func (uc *CategoryUseCase) checkName(ctx context.Context, name string, selfID int64) error {
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrDuplicate
	}
	return nil
}

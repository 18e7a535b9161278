package billing

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// SupplierUseCase casos de uso para proveedores (contraparte de documentos de COMPRA).
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor. El RUC es único.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" || in.RUC == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRUC(ctx, in.RUC, 0); err != nil {
		return nil, err
	}
	s := &entity.Supplier{
		Name:    in.Name,
		RUC:     in.RUC,
		Phone:   dto.Deref(in.Phone),
		Address: dto.Deref(in.Address),
		Email:   dto.Deref(in.Email),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return dto.FromSupplier(s), nil
}

// GetByID obtiene un proveedor; ErrNotFound si no existe.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromSupplier(s), nil
}

// List lista proveedores.
func (uc *SupplierUseCase) List(ctx context.Context, skip, limit int) ([]*dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx, limit, skip)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromSupplier(s))
	}
	return out, nil
}

// Update reemplaza los datos del proveedor (PUT).
func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkRUC(ctx, in.RUC, id); err != nil {
		return nil, err
	}
	s.Name = in.Name
	s.RUC = in.RUC
	s.Phone = dto.Deref(in.Phone)
	s.Address = dto.Deref(in.Address)
	s.Email = dto.Deref(in.Email)
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return dto.FromSupplier(s), nil
}

// Patch aplica solo los campos presentes. El RUC no se modifica por PATCH.
func (uc *SupplierUseCase) Patch(ctx context.Context, id int64, in dto.PatchSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		s.Name = *in.Name
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.Phone != nil {
		s.Phone = *in.Phone
	}
	if in.Email != nil {
		s.Email = *in.Email
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return dto.FromSupplier(s), nil
}

// Delete elimina un proveedor. ErrConflict si algún documento lo referencia.
func (uc *SupplierUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *SupplierUseCase) get(ctx context.Context, id int64) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (uc *SupplierUseCase) checkRUC(ctx context.Context, ruc string, selfID int64) error {
	existing, err := uc.repo.GetByRUC(ctx, ruc)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrDuplicate
	}
	return nil
}

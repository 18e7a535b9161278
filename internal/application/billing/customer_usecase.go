package billing

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// CustomerUseCase casos de uso para clientes (contraparte de documentos de VENTA).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un nuevo cliente. El documento de identidad es único.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.Document == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkDocument(ctx, in.Document, 0); err != nil {
		return nil, err
	}
	customer := &entity.Customer{
		Name:     in.Name,
		Document: in.Document,
		Address:  dto.Deref(in.Address),
		Phone:    dto.Deref(in.Phone),
		Email:    dto.Deref(in.Email),
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return dto.FromCustomer(customer), nil
}

// GetByID obtiene un cliente; ErrNotFound si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.FromCustomer(c), nil
}

// List lista clientes con paginación skip/limit.
func (uc *CustomerUseCase) List(ctx context.Context, skip, limit int) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx, limit, skip)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCustomer(c))
	}
	return out, nil
}

// Update reemplaza todos los campos del cliente (PUT).
func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkDocument(ctx, in.Document, id); err != nil {
		return nil, err
	}
	c.Name = in.Name
	c.Document = in.Document
	c.Address = dto.Deref(in.Address)
	c.Phone = dto.Deref(in.Phone)
	c.Email = dto.Deref(in.Email)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return dto.FromCustomer(c), nil
}

// Patch aplica solo los campos presentes (PATCH).
func (uc *CustomerUseCase) Patch(ctx context.Context, id int64, in dto.PatchCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Document != nil && *in.Document != c.Document {
		if err := uc.checkDocument(ctx, *in.Document, id); err != nil {
			return nil, err
		}
		c.Document = *in.Document
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Address != nil {
		c.Address = *in.Address
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return dto.FromCustomer(c), nil
}

// Delete elimina un cliente. ErrConflict si algún documento lo referencia.
func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CustomerUseCase) get(ctx context.Context, id int64) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// checkDocument ErrDuplicate si otro cliente (distinto de selfID) ya usa el documento.
func (uc *CustomerUseCase) checkDocument(ctx context.Context, document string, selfID int64) error {
	existing, err := uc.repo.GetByDocument(ctx, document)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.ErrDuplicate
	}
	return nil
}

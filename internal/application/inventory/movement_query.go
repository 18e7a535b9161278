package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	domaininv "github.com/jhoicas/facturacion-api/internal/domain/inventory"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de lectura sobre el libro de movimientos.
type MovementQueryUseCase struct {
	movRepo     repository.MovementRepository
	productRepo repository.ProductRepository
	exporter    MovementReportExporter
}

// NewMovementQueryUseCase construye el caso de uso. exporter puede ser nil (sin descarga).
func NewMovementQueryUseCase(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	exporter MovementReportExporter,
) *MovementQueryUseCase {
	return &MovementQueryUseCase{movRepo: movRepo, productRepo: productRepo, exporter: exporter}
}

// List lista movimientos con el producto completo.
func (uc *MovementQueryUseCase) List(ctx context.Context, skip, limit int) ([]*dto.MovementResponse, error) {
	list, err := uc.movRepo.List(ctx, limit, skip)
	if err != nil {
		return nil, err
	}
	return uc.withProducts(ctx, list)
}

// ListByProduct movimientos de un producto (lista vacía si no tiene).
func (uc *MovementQueryUseCase) ListByProduct(ctx context.Context, productID int64) ([]*dto.MovementResponse, error) {
	list, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return uc.withProducts(ctx, list)
}

// Report filtra por tipo y rango de fechas (inclusive).
func (uc *MovementQueryUseCase) Report(ctx context.Context, in dto.MovementReportRequest) ([]*dto.MovementResponse, error) {
	var filter repository.MovementFilter
	if in.Type != "" {
		dir := entity.Direction(in.Type)
		if !dir.Valid() {
			return nil, ErrInvalidMovementType
		}
		filter.Direction = &dir
	}
	filter.From = in.From
	filter.To = in.To
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, fmt.Errorf("%w: fecha_fin anterior a fecha_inicio", domain.ErrInvalidInput)
	}
	list, err := uc.movRepo.Report(ctx, filter)
	if err != nil {
		return nil, err
	}
	return uc.withProducts(ctx, list)
}

// ExportReport genera el reporte en el formato del exportador configurado.
func (uc *MovementQueryUseCase) ExportReport(ctx context.Context, in dto.MovementReportRequest) ([]byte, string, string, error) {
	if uc.exporter == nil {
		return nil, "", "", fmt.Errorf("%w: exportación no disponible", domain.ErrInvalidInput)
	}
	rows, err := uc.Report(ctx, in)
	if err != nil {
		return nil, "", "", err
	}
	data, err := uc.exporter.ExportMovements(ctx, rows)
	if err != nil {
		return nil, "", "", fmt.Errorf("exportar reporte: %w", err)
	}
	filename := "movimientos." + uc.exporter.FileExtension()
	return data, filename, uc.exporter.ContentType(), nil
}

// Reconcile compara stock_actual con el saldo del libro (Σ entradas − Σ salidas).
func (uc *MovementQueryUseCase) Reconcile(ctx context.Context, productID int64) (*dto.ReconciliationResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	totals := domaininv.Totals(movs)
	diff := domaininv.Divergence(product.Stock, totals)
	return &dto.ReconciliationResponse{
		ProductID:  productID,
		Stock:      product.Stock,
		TotalIn:    totals.In,
		TotalOut:   totals.Out,
		Balance:    totals.Balance(),
		Divergence: diff,
		Reconciled: diff == 0,
	}, nil
}

// withProducts adjunta el producto a cada movimiento, consultando cada producto una sola vez.
func (uc *MovementQueryUseCase) withProducts(ctx context.Context, list []*entity.Movement) ([]*dto.MovementResponse, error) {
	cache := make(map[int64]*entity.Product)
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		p, ok := cache[m.ProductID]
		if !ok {
			var err error
			p, err = uc.productRepo.GetByID(ctx, m.ProductID)
			if err != nil {
				return nil, err
			}
			cache[m.ProductID] = p
		}
		out = append(out, dto.FromMovement(m, p))
	}
	return out, nil
}

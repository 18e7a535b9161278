package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/application/inventory"
	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/infrastructure/report"
)

func TestMovementQuery_ReportePorTipoYFechas(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 0)
	ctx := context.Background()

	day1 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)
	_, err := f.ledger.Record(ctx, f.movs, p.ID, 5, entity.DirectionIn, day1, inventory.Posting{})
	require.NoError(t, err)
	_, err = f.ledger.Record(ctx, f.movs, p.ID, 2, entity.DirectionOut, day2, inventory.Posting{})
	require.NoError(t, err)

	uc := inventory.NewMovementQueryUseCase(f.movs, f.products, nil)

	out, err := uc.Report(ctx, dto.MovementReportRequest{Type: "salida"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].Quantity)
	require.NotNil(t, out[0].Product)
	assert.Equal(t, p.ID, out[0].Product.ID)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	out, err = uc.Report(ctx, dto.MovementReportRequest{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "entrada", out[0].Type)

	_, err = uc.Report(ctx, dto.MovementReportRequest{From: &to, To: &from})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Report(ctx, dto.MovementReportRequest{Type: "traslado"})
	assert.ErrorIs(t, err, inventory.ErrInvalidMovementType)
}

func TestMovementQuery_ExportarSinExportador(t *testing.T) {
	f := newFixture(t)
	uc := inventory.NewMovementQueryUseCase(f.movs, f.products, nil)

	_, _, _, err := uc.ExportReport(context.Background(), dto.MovementReportRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovementQuery_ExportarExcel(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 0)
	ctx := context.Background()
	_, err := f.ledger.Post(ctx, f.products, f.movs, p.ID, 3, entity.DirectionIn, inventory.Posting{})
	require.NoError(t, err)

	uc := inventory.NewMovementQueryUseCase(f.movs, f.products, report.NewExcelExporter())
	data, filename, contentType, err := uc.ExportReport(ctx, dto.MovementReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, "movimientos.xlsx", filename)
	assert.Contains(t, contentType, "spreadsheetml")
	assert.Equal(t, []byte("PK"), data[:2], "xlsx es un zip")
}

func TestMovementQuery_Conciliacion(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 0)
	ctx := context.Background()
	uc := inventory.NewMovementQueryUseCase(f.movs, f.products, nil)

	_, err := f.ledger.Post(ctx, f.products, f.movs, p.ID, 10, entity.DirectionIn, inventory.Posting{})
	require.NoError(t, err)
	_, err = f.ledger.Post(ctx, f.products, f.movs, p.ID, 4, entity.DirectionOut, inventory.Posting{})
	require.NoError(t, err)

	rec, err := uc.Reconcile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.TotalIn)
	assert.Equal(t, 4, rec.TotalOut)
	assert.Equal(t, 6, rec.Balance)
	assert.True(t, rec.Reconciled)

	// Un ajuste fuera del libro aparece como diferencia.
	_, err = f.ledger.Apply(ctx, f.products, p.ID, 2, entity.DirectionIn)
	require.NoError(t, err)
	rec, err = uc.Reconcile(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Divergence)
	assert.False(t, rec.Reconciled)

	_, err = uc.Reconcile(ctx, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementQuery_ListPaginado(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, 0)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := f.ledger.Post(ctx, f.products, f.movs, p.ID, 1, entity.DirectionIn, inventory.Posting{})
		require.NoError(t, err)
	}
	uc := inventory.NewMovementQueryUseCase(f.movs, f.products, nil)

	out, err := uc.List(ctx, 3, 10)
	require.NoError(t, err)
	assert.Len(t, out, 2)
}

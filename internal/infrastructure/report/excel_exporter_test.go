package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
)

func TestExportMovements_FilasYTotales(t *testing.T) {
	docID := int64(9)
	rows := []*dto.MovementResponse{
		{ID: 1, ProductID: 2, Type: "entrada", Quantity: 10, Date: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			Product: &dto.ProductResponse{ID: 2, Name: "Arroz"}},
		{ID: 2, ProductID: 2, Type: "salida", Quantity: 4, Date: time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
			DocumentID: &docID, Reference: "ref-1"},
	}

	e := NewExcelExporter()
	out, err := e.ExportMovements(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, "xlsx", e.FileExtension())

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetName, "C1")
	require.NoError(t, err)
	assert.Equal(t, "Tipo", header)

	name, err := f.GetCellValue(sheetName, "E2")
	require.NoError(t, err)
	assert.Equal(t, "Arroz", name)

	doc, err := f.GetCellValue(sheetName, "G3")
	require.NoError(t, err)
	assert.Equal(t, "9", doc)

	// Totales a partir de la fila len(rows)+3.
	balance, err := f.GetCellValue(sheetName, "F7")
	require.NoError(t, err)
	assert.Equal(t, "6", balance)
}

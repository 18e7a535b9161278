// Package report genera reportes descargables del libro de movimientos.
package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/facturacion-api/internal/application/dto"
	"github.com/jhoicas/facturacion-api/internal/application/inventory"
)

const sheetName = "Movimientos"

var headings = []string{"ID", "Fecha", "Tipo", "Producto ID", "Producto", "Cantidad", "Documento ID", "Referencia"}

var _ inventory.MovementReportExporter = (*ExcelExporter)(nil)

// ExcelExporter implementa inventory.MovementReportExporter con excelize (.xlsx).
type ExcelExporter struct{}

// NewExcelExporter construye el exportador.
func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// ContentType MIME de un libro xlsx.
func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension extensión del archivo.
func (e *ExcelExporter) FileExtension() string { return "xlsx" }

// ExportMovements escribe una fila por movimiento y una fila final con totales de entradas y salidas.
func (e *ExcelExporter) ExportMovements(_ context.Context, rows []*dto.MovementResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	for i, h := range headings {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("excel: cabecera: %w", err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(headings), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("excel: estilo cabecera: %w", err)
	}

	var totalIn, totalOut int
	for i, m := range rows {
		values := []any{m.ID, m.Date.Format("2006-01-02 15:04:05"), m.Type, m.ProductID, productName(m), m.Quantity, documentID(m), m.Reference}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", i+2), &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", i+2, err)
		}
		switch m.Type {
		case "entrada":
			totalIn += m.Quantity
		case "salida":
			totalOut += m.Quantity
		}
	}

	totalsRow := len(rows) + 3
	summary := [][]any{
		{"Total entradas", totalIn},
		{"Total salidas", totalOut},
		{"Saldo", totalIn - totalOut},
	}
	for i, s := range summary {
		r := s
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("E%d", totalsRow+i), &r); err != nil {
			return nil, fmt.Errorf("excel: totales: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func productName(m *dto.MovementResponse) string {
	if m.Product == nil {
		return ""
	}
	return m.Product.Name
}

func documentID(m *dto.MovementResponse) any {
	if m.DocumentID == nil {
		return ""
	}
	return *m.DocumentID
}

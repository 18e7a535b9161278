package xmlexport

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jhoicas/facturacion-api/internal/application/billing"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
)

func sampleDocument() *appbilling.RenderDocument {
	customerID := int64(7)
	line := entity.DocumentLine{
		ID: 1, DocumentID: 3, ProductID: 5, Quantity: 2,
		UnitPrice: decimal.RequireFromString("10.00"),
		Subtotal:  decimal.RequireFromString("20.00"),
	}
	return &appbilling.RenderDocument{
		Document: &entity.Document{
			ID: 3, Type: "Boleta", Number: "B001-7", Operation: entity.OperationSale,
			CustomerID: &customerID,
			Date:       time.Date(2024, 5, 2, 8, 30, 0, 0, time.UTC),
			Lines:      []*entity.DocumentLine{&line},
		},
		PartyName:  "Ana & Hijos",
		PartyTaxID: "20123456789",
		Lines:      []appbilling.RenderLine{{DocumentLine: line, ProductName: "Azúcar <1kg>"}},
	}
}

func TestExportDocumentXML_HuellaSobreFormaCanonica(t *testing.T) {
	out, fingerprint, err := NewExporter().ExportDocumentXML(context.Background(), sampleDocument())
	require.NoError(t, err)

	sum := sha256.Sum256(out)
	assert.Equal(t, hex.EncodeToString(sum[:]), fingerprint)
	assert.Len(t, fingerprint, 64)

	// Misma entrada, misma huella.
	_, again, err := NewExporter().ExportDocumentXML(context.Background(), sampleDocument())
	require.NoError(t, err)
	assert.Equal(t, fingerprint, again)
}

func TestExportDocumentXML_Contenido(t *testing.T) {
	out, _, err := NewExporter().ExportDocumentXML(context.Background(), sampleDocument())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Documento", root.Tag)
	assert.Equal(t, "VENTA", root.FindElement("./Cabecera/Operacion").Text())
	assert.Equal(t, "cliente", root.FindElement("./Contraparte").SelectAttrValue("rol", ""))
	assert.Equal(t, "Azúcar <1kg>", root.FindElement("./Detalles/Detalle/Producto").Text())
	assert.Equal(t, "20.00", root.FindElement("./Total").Text())
}

func TestExportDocumentXML_CambiaConElContenido(t *testing.T) {
	a := sampleDocument()
	b := sampleDocument()
	b.Document.Number = "B001-8"

	_, fa, err := NewExporter().ExportDocumentXML(context.Background(), a)
	require.NoError(t, err)
	_, fb, err := NewExporter().ExportDocumentXML(context.Background(), b)
	require.NoError(t, err)
	assert.NotEqual(t, fa, fb)
}

package billing

import (
	"context"

	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye documentos, productos y movimientos.
// Si fn retorna error se hace rollback de todo lo hecho en la llamada.
type BillingTxRunner interface {
	RunDocument(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// RenderLine línea de documento con el nombre del producto para representaciones (PDF, XML).
type RenderLine struct {
	entity.DocumentLine
	ProductName string
}

// RenderDocument documento listo para representar: cabecera, contraparte y líneas con precios capturados.
type RenderDocument struct {
	Document *entity.Document
	// Contraparte: cliente en VENTA, proveedor en COMPRA. Vacío si el documento no tiene.
	PartyName  string
	PartyTaxID string
	Lines      []RenderLine
}

// DocumentPDFGenerator genera la representación gráfica de un documento.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *RenderDocument) ([]byte, error)
}

// DocumentXMLExporter serializa el documento a XML canónico y devuelve su huella (hex).
type DocumentXMLExporter interface {
	ExportDocumentXML(ctx context.Context, doc *RenderDocument) (xml []byte, fingerprint string, err error)
}

package billing

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jhoicas/facturacion-api/internal/domain"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/internal/domain/repository"
)

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// RenderUseCase produce las representaciones descargables de un documento (PDF y XML).
// Usa siempre los precios capturados en las líneas, nunca el precio vigente del producto.
type RenderUseCase struct {
	docRepo      repository.DocumentRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	pdf          DocumentPDFGenerator
	xml          DocumentXMLExporter
}

// NewRenderUseCase construye el caso de uso inyectando todas sus dependencias.
func NewRenderUseCase(
	docRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	pdf DocumentPDFGenerator,
	xml DocumentXMLExporter,
) *RenderUseCase {
	return &RenderUseCase{
		docRepo:      docRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		pdf:          pdf,
		xml:          xml,
	}
}

// DownloadPDF genera el PDF del documento.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el documento no existe.
func (uc *RenderUseCase) DownloadPDF(ctx context.Context, id int64) ([]byte, string, error) {
	doc, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.GenerateDocumentPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return data, filename(doc.Document, "pdf"), nil
}

// DownloadXML exporta el documento a XML canónico junto con su huella SHA-256.
func (uc *RenderUseCase) DownloadXML(ctx context.Context, id int64) ([]byte, string, string, error) {
	doc, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", "", err
	}
	data, fingerprint, err := uc.xml.ExportDocumentXML(ctx, doc)
	if err != nil {
		return nil, "", "", fmt.Errorf("xml: exportación fallida: %w", err)
	}
	return data, filename(doc.Document, "xml"), fingerprint, nil
}

func (uc *RenderUseCase) load(ctx context.Context, id int64) (*RenderDocument, error) {
	doc, err := uc.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener documento: %w", err)
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}

	out := &RenderDocument{Document: doc, Lines: make([]RenderLine, 0, len(doc.Lines))}
	if doc.CustomerID != nil {
		if c, cErr := uc.customerRepo.GetByID(ctx, *doc.CustomerID); cErr == nil && c != nil {
			out.PartyName, out.PartyTaxID = c.Name, c.Document
		}
	} else if doc.SupplierID != nil {
		if s, sErr := uc.supplierRepo.GetByID(ctx, *doc.SupplierID); sErr == nil && s != nil {
			out.PartyName, out.PartyTaxID = s.Name, s.RUC
		}
	}

	for _, l := range doc.Lines {
		name := fmt.Sprintf("Producto %d", l.ProductID) // fallback
		if p, pErr := uc.productRepo.GetByID(ctx, l.ProductID); pErr == nil && p != nil {
			name = p.Name
		}
		out.Lines = append(out.Lines, RenderLine{DocumentLine: *l, ProductName: name})
	}
	return out, nil
}

func filename(doc *entity.Document, ext string) string {
	return fmt.Sprintf("%s_%s.%s",
		unsafeFilename.ReplaceAllString(doc.Type, "_"),
		unsafeFilename.ReplaceAllString(doc.Number, "_"),
		ext)
}

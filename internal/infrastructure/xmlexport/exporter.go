// Package xmlexport serializa documentos a XML canónico (C14N) con huella SHA-256.
package xmlexport

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	appbilling "github.com/jhoicas/facturacion-api/internal/application/billing"
)

// Namespace del documento exportado.
const Namespace = "urn:facturacion-api:documento:1"

var _ appbilling.DocumentXMLExporter = (*Exporter)(nil)

// Exporter implementa billing.DocumentXMLExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportDocumentXML arma el árbol con etree, lo canoniza y calcula la huella sobre la forma canónica.
func (e *Exporter) ExportDocumentXML(_ context.Context, doc *appbilling.RenderDocument) ([]byte, string, error) {
	raw, err := Build(doc)
	if err != nil {
		return nil, "", err
	}
	canonical, err := canonicalize(raw)
	if err != nil {
		return nil, "", fmt.Errorf("xml: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return canonical, hex.EncodeToString(sum[:]), nil
}

// Build serializa el documento sin canonicalizar.
func Build(doc *appbilling.RenderDocument) ([]byte, error) {
	if doc == nil || doc.Document == nil {
		return nil, fmt.Errorf("xml: documento vacío")
	}
	d := doc.Document

	x := etree.NewDocument()
	root := x.CreateElement("Documento")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("id", strconv.FormatInt(d.ID, 10))

	header := root.CreateElement("Cabecera")
	header.CreateElement("Tipo").SetText(d.Type)
	header.CreateElement("Numero").SetText(d.Number)
	header.CreateElement("Operacion").SetText(string(d.Operation))
	header.CreateElement("Fecha").SetText(d.Date.UTC().Format(time.RFC3339))

	if doc.PartyName != "" || doc.PartyTaxID != "" {
		party := root.CreateElement("Contraparte")
		switch {
		case d.CustomerID != nil:
			party.CreateAttr("rol", "cliente")
			party.CreateAttr("id", strconv.FormatInt(*d.CustomerID, 10))
		case d.SupplierID != nil:
			party.CreateAttr("rol", "proveedor")
			party.CreateAttr("id", strconv.FormatInt(*d.SupplierID, 10))
		}
		party.CreateElement("Nombre").SetText(doc.PartyName)
		party.CreateElement("Identificacion").SetText(doc.PartyTaxID)
	}

	lines := root.CreateElement("Detalles")
	for i, l := range doc.Lines {
		el := lines.CreateElement("Detalle")
		el.CreateAttr("linea", strconv.Itoa(i+1))
		el.CreateElement("ProductoID").SetText(strconv.FormatInt(l.ProductID, 10))
		el.CreateElement("Producto").SetText(l.ProductName)
		el.CreateElement("Cantidad").SetText(strconv.Itoa(l.Quantity))
		el.CreateElement("PrecioUnitario").SetText(l.UnitPrice.StringFixed(2))
		el.CreateElement("Subtotal").SetText(l.Subtotal.StringFixed(2))
	}
	root.CreateElement("Total").SetText(d.Total().StringFixed(2))

	x.Indent(2)
	out, err := x.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xml: serializar: %w", err)
	}
	return out, nil
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

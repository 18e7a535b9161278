package dto

import "github.com/jhoicas/facturacion-api/internal/domain/entity"

// Optional devuelve nil para cadenas vacías (columnas nullable en la API).
func Optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref devuelve "" para punteros nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// FromCategory convierte la entidad en su respuesta.
func FromCategory(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{ID: c.ID, Name: c.Name, Description: Optional(c.Description)}
}

// FromProduct convierte la entidad en su respuesta (sin categoría embebida).
func FromProduct(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:            p.ID,
		Barcode:       Optional(p.Barcode),
		Name:          p.Name,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		UnitMeasure:   p.UnitMeasure,
		CategoryID:    p.CategoryID,
	}
}

// FromSupplier convierte la entidad en su respuesta.
func FromSupplier(s *entity.Supplier) *SupplierResponse {
	if s == nil {
		return nil
	}
	return &SupplierResponse{
		ID:      s.ID,
		Name:    s.Name,
		RUC:     s.RUC,
		Phone:   Optional(s.Phone),
		Address: Optional(s.Address),
		Email:   Optional(s.Email),
	}
}

// FromCustomer convierte la entidad en su respuesta.
func FromCustomer(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:       c.ID,
		Name:     c.Name,
		Document: c.Document,
		Address:  Optional(c.Address),
		Phone:    Optional(c.Phone),
		Email:    Optional(c.Email),
	}
}

// FromDocument convierte cabecera y líneas en la respuesta completa.
func FromDocument(d *entity.Document) *DocumentResponse {
	if d == nil {
		return nil
	}
	resp := &DocumentResponse{
		ID:         d.ID,
		Type:       d.Type,
		Number:     d.Number,
		CustomerID: d.CustomerID,
		SupplierID: d.SupplierID,
		Operation:  string(d.Operation),
		Date:       d.Date,
		Lines:      make([]DocumentLineResponse, 0, len(d.Lines)),
		Total:      d.Total(),
	}
	for _, l := range d.Lines {
		resp.Lines = append(resp.Lines, DocumentLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return resp
}

// FromMovement convierte un movimiento; product puede ser nil si no se cargó.
func FromMovement(m *entity.Movement, product *entity.Product) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:         m.ID,
		ProductID:  m.ProductID,
		Type:       string(m.Direction),
		Quantity:   m.Quantity,
		Date:       m.Date,
		Reference:  m.Reference,
		DocumentID: m.DocumentID,
		Product:    FromProduct(product),
	}
}

package dto

import "github.com/shopspring/decimal"

// ProductRequest cuerpo de POST y PUT /productos.
type ProductRequest struct {
	Barcode       *string         `json:"codigo_barras" validate:"omitempty,max=64"`
	Name          string          `json:"nombre" validate:"required,min=1,max=200"`
	PurchasePrice decimal.Decimal `json:"precio_compra"`
	SalePrice     decimal.Decimal `json:"precio_venta"`
	Stock         int             `json:"stock_actual" validate:"min=0"`
	MinStock      int             `json:"stock_minimo" validate:"min=0"`
	UnitMeasure   string          `json:"unidad_medida" validate:"max=32"`
	CategoryID    int64           `json:"categoria_id" validate:"required,gt=0"`
}

// PatchProductRequest cuerpo de PATCH /productos/{id}.
type PatchProductRequest struct {
	Barcode       *string          `json:"codigo_barras" validate:"omitempty,max=64"`
	Name          *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	PurchasePrice *decimal.Decimal `json:"precio_compra"`
	SalePrice     *decimal.Decimal `json:"precio_venta"`
	Stock         *int             `json:"stock_actual" validate:"omitempty,min=0"`
	MinStock      *int             `json:"stock_minimo" validate:"omitempty,min=0"`
	UnitMeasure   *string          `json:"unidad_medida" validate:"omitempty,max=32"`
	CategoryID    *int64           `json:"categoria_id" validate:"omitempty,gt=0"`
}

// ProductResponse salida de un producto (con su categoría cuando se conoce).
type ProductResponse struct {
	ID            int64             `json:"id"`
	Barcode       *string           `json:"codigo_barras"`
	Name          string            `json:"nombre"`
	PurchasePrice decimal.Decimal   `json:"precio_compra"`
	SalePrice     decimal.Decimal   `json:"precio_venta"`
	Stock         int               `json:"stock_actual"`
	MinStock      int               `json:"stock_minimo"`
	UnitMeasure   string            `json:"unidad_medida"`
	CategoryID    int64             `json:"categoria_id"`
	Category      *CategoryResponse `json:"categoria,omitempty"`
}

// ReconciliationResponse comparación entre stock_actual y el libro de movimientos.
type ReconciliationResponse struct {
	ProductID  int64 `json:"producto_id"`
	Stock      int   `json:"stock_actual"`
	TotalIn    int   `json:"total_entradas"`
	TotalOut   int   `json:"total_salidas"`
	Balance    int   `json:"saldo_libro"`
	Divergence int   `json:"diferencia"`
	Reconciled bool  `json:"conciliado"`
}

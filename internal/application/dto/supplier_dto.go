package dto

// SupplierRequest cuerpo de POST y PUT /proveedores.
type SupplierRequest struct {
	Name    string  `json:"nombre" validate:"required,min=1,max=200"`
	RUC     string  `json:"ruc" validate:"required,min=1,max=20"`
	Phone   *string `json:"telefono" validate:"omitempty,max=30"`
	Address *string `json:"direccion" validate:"omitempty,max=250"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

// PatchSupplierRequest cuerpo de PATCH /proveedores/{id}.
type PatchSupplierRequest struct {
	Name    *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Address *string `json:"direccion" validate:"omitempty,max=250"`
	Phone   *string `json:"telefono" validate:"omitempty,max=30"`
	Email   *string `json:"email" validate:"omitempty,email"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID      int64   `json:"id"`
	Name    string  `json:"nombre"`
	RUC     string  `json:"ruc"`
	Phone   *string `json:"telefono"`
	Address *string `json:"direccion"`
	Email   *string `json:"email"`
}

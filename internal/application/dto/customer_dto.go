package dto

// CustomerRequest cuerpo de POST y PUT /clientes.
type CustomerRequest struct {
	Name     string  `json:"nombre" validate:"required,min=1,max=200"`
	Document string  `json:"documento" validate:"required,min=1,max=20"`
	Address  *string `json:"direccion" validate:"omitempty,max=250"`
	Phone    *string `json:"telefono" validate:"omitempty,max=30"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// PatchCustomerRequest cuerpo de PATCH /clientes/{id}.
type PatchCustomerRequest struct {
	Name     *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Document *string `json:"documento" validate:"omitempty,min=1,max=20"`
	Address  *string `json:"direccion" validate:"omitempty,max=250"`
	Phone    *string `json:"telefono" validate:"omitempty,max=30"`
	Email    *string `json:"email" validate:"omitempty,email"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"nombre"`
	Document string  `json:"documento"`
	Address  *string `json:"direccion"`
	Phone    *string `json:"telefono"`
	Email    *string `json:"email"`
}

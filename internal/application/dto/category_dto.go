package dto

// CategoryRequest cuerpo de POST y PUT /categorias.
type CategoryRequest struct {
	Name        string  `json:"nombre" validate:"required,min=1,max=120"`
	Description *string `json:"descripcion"`
}

// PatchCategoryRequest cuerpo de PATCH /categorias/{id}: solo se aplican los campos presentes.
type PatchCategoryRequest struct {
	Name        *string `json:"nombre" validate:"omitempty,min=1,max=120"`
	Description *string `json:"descripcion"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nombre"`
	Description *string `json:"descripcion"`
}

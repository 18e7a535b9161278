package dto

// PageRequest paginación para listados (skip/limit, como en la API original).
type PageRequest struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=0,max=500"`
}

// DefaultPage aplica valores por defecto si Limit/Skip son cero o negativos.
func (p *PageRequest) DefaultPage(defaultLimit int) {
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

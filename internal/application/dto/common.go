package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto y cotas si Limit/Offset vienen fuera de rango.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
	if p.Limit > 200 {
		p.Limit = 200
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// Envelope sobre estándar de respuesta exitosa: {ok:true, data:...}.
type Envelope struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

// ErrorResponse cuerpo de error HTTP: {ok:false, error:CODE, message:...}.
type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

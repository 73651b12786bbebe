package dto

// ErrorResponse cuerpo de error HTTP. Fields trae los errores de validación
// campo → mensaje cuando aplica (nunca se lanzan, se devuelven).
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

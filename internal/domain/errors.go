package domain

import "errors"

// Errores de dominio (sin dependencias externas). Todos se recuperan en el
// borde donde se detectan; ninguno es fatal.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrCredentialMismatch = errors.New("credencial incorrecta")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrFetchFailed        = errors.New("fallo al consultar la colección remota")
)

// FieldErrors mapea campo → mensaje para validaciones de formulario.
// Se devuelve, nunca se lanza; bloquea el submit hasta que el usuario corrige.
type FieldErrors map[string]string

// Error implementa error para poder propagarse por los use cases.
func (f FieldErrors) Error() string {
	for field, msg := range f {
		return field + ": " + msg
	}
	return "validación fallida"
}

// HasErrors indica si hay al menos un campo con error.
func (f FieldErrors) HasErrors() bool {
	return len(f) > 0
}

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrNoEstablishment    = errors.New("el usuario no pertenece a un establecimiento")
)

// ValidationError es un error de validación con mensaje legible para el usuario.
// errors.Is(err, ErrInvalidInput) devuelve true, de modo que el handler HTTP
// lo distingue de fallos de autorización o de infraestructura.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Is asocia el error con ErrInvalidInput para errors.Is.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Validation construye un error de validación con mensaje.
func Validation(msg string) error { return &ValidationError{Msg: msg} }

package service

import (
	"errors"

	"todo-app/internal/repository"
)

// Tipos de error de validacion.
var (
	ErrMissingField   = errors.New("missing credentials")
	ErrFieldType      = errors.New("wrong datatype")
	ErrFieldLength    = errors.New("invalid length")
	ErrEmailFormat    = errors.New("email format is wrong")
	ErrUsernameFormat = errors.New("username format is wrong")
)

// Errores de signup/login. Los duplicados son los del repositorio para que
// la verificacion previa y el constraint de la base reporten lo mismo.
var (
	ErrDuplicateEmail    = repository.ErrDuplicateEmail
	ErrDuplicateUsername = repository.ErrDuplicateUsername
	ErrEmailNotFound     = errors.New("email not found")
	ErrUsernameNotFound  = errors.New("username not found")
	ErrBadCredentials    = errors.New("incorrect password")
)

// Errores del session guard.
var (
	ErrNoSession        = errors.New("no session token")
	ErrSessionNotFound  = repository.ErrSessionNotFound
	ErrNotAuthenticated = errors.New("session not authenticated")
	ErrInvalidCookie    = errors.New("invalid session cookie")
)

// ValidationError describe la primera regla de signup que fallo.
type ValidationError struct {
	Kind    error
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// IsClientError indica si el error corresponde a un 400 y puede mostrarse al cliente.
func IsClientError(err error) bool {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr),
		errors.Is(err, ErrMissingField),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrDuplicateUsername),
		errors.Is(err, ErrEmailNotFound),
		errors.Is(err, ErrUsernameNotFound),
		errors.Is(err, ErrBadCredentials):
		return true
	}
	return false
}

// IsDenied indica si el guard debe responder 401 en lugar de 500.
func IsDenied(err error) bool {
	return errors.Is(err, ErrNoSession) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrInvalidCookie)
}

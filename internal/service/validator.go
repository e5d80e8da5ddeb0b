package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Limites inclusivos de longitud para username y password.
// TODO: confirmar con producto que el rango 3-30 incluye ambos extremos.
const (
	minCredentialLen = 3
	maxCredentialLen = 30
)

var signupFields = []string{"name", "email", "username", "password"}

var emailValidator = validator.New()

// SignupForm es el body crudo de signup (JSON decodificado o form values).
type SignupForm map[string]any

// SignupInput es el resultado de un signup validado.
type SignupInput struct {
	Name     string
	Email    string
	Username string
	Password string
}

// IsEmail aplica la regla "email" de go-playground/validator.
func IsEmail(s string) bool {
	return emailValidator.Var(s, "required,email") == nil
}

// ValidateSignup corre las reglas en orden y devuelve solo la primera que falla.
func ValidateSignup(form SignupForm) (SignupInput, error) {
	for _, field := range signupFields {
		if isMissing(field, form[field]) {
			return SignupInput{}, &ValidationError{Kind: ErrMissingField, Field: field, Message: "missing credentials"}
		}
	}

	values := make(map[string]string, len(signupFields))
	for _, field := range signupFields {
		s, ok := form[field].(string)
		if !ok {
			return SignupInput{}, &ValidationError{
				Kind:    ErrFieldType,
				Field:   field,
				Message: fmt.Sprintf("datatype of %s is wrong", field),
			}
		}
		values[field] = s
	}

	input := SignupInput{
		Name:     strings.TrimSpace(values["name"]),
		Email:    strings.TrimSpace(values["email"]),
		Username: strings.TrimSpace(values["username"]),
		Password: values["password"],
	}

	if !lengthInRange(input.Username) {
		return SignupInput{}, &ValidationError{Kind: ErrFieldLength, Field: "username", Message: "username length should be 3-30"}
	}
	if !lengthInRange(input.Password) {
		return SignupInput{}, &ValidationError{Kind: ErrFieldLength, Field: "password", Message: "password length should be 3-30"}
	}
	if !IsEmail(input.Email) {
		return SignupInput{}, &ValidationError{Kind: ErrEmailFormat, Field: "email", Message: "email format is wrong"}
	}
	// Un username con @ podria confundirse con un email en el login.
	if strings.Contains(input.Username, "@") {
		return SignupInput{}, &ValidationError{Kind: ErrUsernameFormat, Field: "username", Message: "username cannot contain @"}
	}

	return input, nil
}

// El password no se recorta: "   " es un password valido de longitud 3.
func isMissing(field string, v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		if field == "password" {
			return val == ""
		}
		return strings.TrimSpace(val) == ""
	}
	return false
}

func lengthInRange(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= minCredentialLen && n <= maxCredentialLen
}

package service

import (
	"errors"
	"strings"
	"testing"
)

func validForm() SignupForm {
	return SignupForm{
		"name":     "Al",
		"email":    "al@x.com",
		"username": "alx",
		"password": "secret1",
	}
}

func TestValidateSignup(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f SignupForm)
		wantKind  error
		wantField string
	}{
		{name: "valid", mutate: func(f SignupForm) {}},
		{name: "missing name", mutate: func(f SignupForm) { delete(f, "name") }, wantKind: ErrMissingField, wantField: "name"},
		{name: "empty email", mutate: func(f SignupForm) { f["email"] = "" }, wantKind: ErrMissingField, wantField: "email"},
		{name: "nil username", mutate: func(f SignupForm) { f["username"] = nil }, wantKind: ErrMissingField, wantField: "username"},
		{name: "empty password", mutate: func(f SignupForm) { f["password"] = "" }, wantKind: ErrMissingField, wantField: "password"},
		{name: "blank username", mutate: func(f SignupForm) { f["username"] = "   " }, wantKind: ErrMissingField, wantField: "username"},
		{name: "whitespace password is not trimmed", mutate: func(f SignupForm) { f["password"] = "   " }},
		{name: "numeric name", mutate: func(f SignupForm) { f["name"] = 42.0 }, wantKind: ErrFieldType, wantField: "name"},
		{name: "bool password", mutate: func(f SignupForm) { f["password"] = true }, wantKind: ErrFieldType, wantField: "password"},
		{name: "username too short", mutate: func(f SignupForm) { f["username"] = "al" }, wantKind: ErrFieldLength, wantField: "username"},
		{name: "username too long", mutate: func(f SignupForm) { f["username"] = strings.Repeat("a", 31) }, wantKind: ErrFieldLength, wantField: "username"},
		{name: "username at lower bound", mutate: func(f SignupForm) { f["username"] = "abc" }},
		{name: "username at upper bound", mutate: func(f SignupForm) { f["username"] = strings.Repeat("a", 30) }},
		{name: "password too short", mutate: func(f SignupForm) { f["password"] = "ab" }, wantKind: ErrFieldLength, wantField: "password"},
		{name: "password too long", mutate: func(f SignupForm) { f["password"] = strings.Repeat("p", 31) }, wantKind: ErrFieldLength, wantField: "password"},
		{name: "bad email", mutate: func(f SignupForm) { f["email"] = "not-an-email" }, wantKind: ErrEmailFormat, wantField: "email"},
		{name: "username with at", mutate: func(f SignupForm) { f["username"] = "al@x" }, wantKind: ErrUsernameFormat, wantField: "username"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(form)

			_, err := ValidateSignup(form)
			if tt.wantKind == nil {
				if err != nil {
					t.Fatalf("expected valid input, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantKind) {
				t.Fatalf("expected %v, got %v", tt.wantKind, err)
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) || vErr.Field != tt.wantField {
				t.Fatalf("expected field %s, got %+v", tt.wantField, err)
			}
		})
	}
}

func TestValidateSignup_FirstViolationWins(t *testing.T) {
	form := SignupForm{
		"name":     "Al",
		"email":    "bad",
		"username": "a",
		"password": "b",
	}
	_, err := ValidateSignup(form)
	if !errors.Is(err, ErrFieldLength) {
		t.Fatalf("expected username length error first, got %v", err)
	}
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "username" {
		t.Fatalf("expected username to be reported, got %+v", err)
	}
}

func TestValidateSignup_MissingBeforeType(t *testing.T) {
	form := SignupForm{"name": 7.0, "email": "al@x.com", "username": "alx"}
	_, err := ValidateSignup(form)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected missing field before type error, got %v", err)
	}
}

func TestValidateSignup_TrimsIdentityFields(t *testing.T) {
	form := validForm()
	form["email"] = "  al@x.com "
	form["username"] = " alx "
	form["password"] = " secret1 "

	input, err := ValidateSignup(form)
	if err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	if input.Email != "al@x.com" || input.Username != "alx" {
		t.Fatalf("expected trimmed identity fields, got %+v", input)
	}
	if input.Password != " secret1 " {
		t.Fatalf("expected password untouched, got %q", input.Password)
	}
}

func TestIsEmail(t *testing.T) {
	for _, s := range []string{"al@x.com", "first.last@example.co.uk"} {
		if !IsEmail(s) {
			t.Fatalf("expected %q to be an email", s)
		}
	}
	for _, s := range []string{"", "alx", "al@", "@x.com", "al x@x.com"} {
		if IsEmail(s) {
			t.Fatalf("expected %q not to be an email", s)
		}
	}
}

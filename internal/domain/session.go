package domain

import "time"

// SessionUser es la copia del usuario tomada al momento del login; no se
// actualiza si el usuario cambia despues.
type SessionUser struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// Session se guarda indexada por el hash SHA-256 del token; el token en
// claro solo lo conoce el cliente.
type Session struct {
	ID              string      `json:"id"`
	IsAuthenticated bool        `json:"is_authenticated"`
	User            SessionUser `json:"user"`
	CreatedAt       time.Time   `json:"created_at"`
	ExpiresAt       time.Time   `json:"expires_at"`
}

func (s Session) IsExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

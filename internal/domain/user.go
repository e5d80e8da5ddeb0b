package domain

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Snapshot copia los campos de identidad que viajan dentro de una sesion.
func (u User) Snapshot() SessionUser {
	return SessionUser{
		UserID:   u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}

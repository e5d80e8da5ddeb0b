package domain

import "time"

type Todo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"todo"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

// Account is a registered identity. PasswordHash holds the bcrypt hash, never the plaintext.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

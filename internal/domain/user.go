package domain

import "time"

// User is an account that can log in and receive a credential token.
// Password always holds the bcrypt hash, never the plaintext.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package domain

import "time"

// User is an account that owns trips. PasswordHash is a bcrypt hash and
// never leaves the server.
type User struct {
	ID           int
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

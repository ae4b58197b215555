package entity

import (
	"time"
)

// User is the aggregate root for the credential store.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID        int64
	Email     string
	Password  string
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

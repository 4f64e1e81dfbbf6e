package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is a persisted credential record. It is created at signup and never
// mutated afterwards. TOTPSecret holds the AES-256-GCM sealed secret, not
// the plaintext.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	TOTPSecret   string
	CreatedAt    time.Time
}

// Storage defines the persistence operations the auth service requires.
// CreateUser must return ErrUsernameTaken on a duplicate username and
// GetUserByUsername must return ErrUserNotFound for unknown usernames.
type Storage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

package pgstore

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/shopgate/internal/auth"
	"github.com/dmitrymomot/shopgate/pkg/pg"
)

// CreateUser inserts a credential record. A duplicate username surfaces as
// auth.ErrUsernameTaken via the unique constraint.
func (s *Store) CreateUser(ctx context.Context, user *auth.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, totp_secret, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.PasswordHash, user.TOTPSecret, user.CreatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return auth.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByUsername fetches a credential record, returning
// auth.ErrUserNotFound for unknown usernames.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	var user auth.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, totp_secret, created_at
		 FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.TOTPSecret, &user.CreatedAt)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

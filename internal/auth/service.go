package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/shopgate/pkg/jwt"
	"github.com/dmitrymomot/shopgate/pkg/logger"
	"github.com/dmitrymomot/shopgate/pkg/qrcode"
	"github.com/dmitrymomot/shopgate/pkg/totp"
)

// replayTTL covers the current TOTP window plus the adjacent windows the
// verifier accepts, so a consumed code stays blocked for as long as it could
// still verify.
const replayTTL = 3 * totp.Period * time.Second

// Service implements registration and the two-stage login flow: password
// verification yields the provisioning QR image, OTP verification yields a
// signed session token.
type Service struct {
	storage    Storage
	tokens     *jwt.Service
	guard      ReplayGuard
	encKey     []byte
	issuer     string
	tokenTTL   time.Duration
	qrSize     int
	bcryptCost int
	log        *slog.Logger
	now        func() time.Time
}

// Option configures the auth service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithIssuer sets the issuer name shown in authenticator apps.
func WithIssuer(issuer string) Option {
	return func(s *Service) { s.issuer = issuer }
}

// WithTokenTTL sets the session token lifetime.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) { s.tokenTTL = ttl }
}

// WithQRCodeSize sets the provisioning image size in pixels.
func WithQRCodeSize(size int) Option {
	return func(s *Service) { s.qrSize = size }
}

// WithBcryptCost sets the bcrypt cost for password hashing.
func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates the auth service. encKey must be a 32-byte AES-256 key;
// it seals TOTP secrets before they reach storage.
func NewService(storage Storage, tokens *jwt.Service, guard ReplayGuard, encKey []byte, opts ...Option) *Service {
	s := &Service{
		storage:    storage,
		tokens:     tokens,
		guard:      guard,
		encKey:     encKey,
		issuer:     "shopgate",
		tokenTTL:   10 * time.Minute,
		qrSize:     256,
		bcryptCost: bcrypt.DefaultCost,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Signup registers a new user: hashes the password, generates a fresh TOTP
// secret, and persists the sealed record. Returns ErrUsernameTaken when the
// username exists.
func (s *Service) Signup(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	secret, err := totp.GenerateSecret()
	if err != nil {
		return fmt.Errorf("failed to generate TOTP secret: %w", err)
	}

	sealed, err := totp.EncryptSecret(secret, s.encKey)
	if err != nil {
		return fmt.Errorf("failed to seal TOTP secret: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		TOTPSecret:   sealed,
		CreatedAt:    s.now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "user registered",
		logger.Username(username),
		logger.Component("auth"),
	)

	return nil
}

// PasswordLogin is the first login stage. It verifies the password and, on
// success, renders the TOTP provisioning QR image for the account. Unknown
// usernames and hash mismatches both yield ErrInvalidCredentials so the
// response does not reveal whether the username exists.
func (s *Service) PasswordLogin(ctx context.Context, username, password string) ([]byte, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		// An unknown username must be indistinguishable from a wrong
		// password; anything else is a storage failure and surfaces as one.
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	secret, err := totp.DecryptSecret(user.TOTPSecret, s.encKey)
	if err != nil {
		return nil, fmt.Errorf("failed to unseal TOTP secret: %w", err)
	}

	uri, err := totp.ProvisioningURI(totp.Params{
		Secret:      secret,
		AccountName: user.Username,
		Issuer:      s.issuer,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build provisioning URI: %w", err)
	}

	img, err := qrcode.Generate(uri, s.qrSize)
	if err != nil {
		return nil, fmt.Errorf("failed to render provisioning QR: %w", err)
	}

	s.log.InfoContext(ctx, "password stage passed",
		logger.Username(username),
		logger.Component("auth"),
	)

	return img, nil
}

// OTPLogin is the second login stage. It verifies the submitted one-time
// code against the current and adjacent 30-second windows, marks the code
// consumed so it cannot be replayed, and issues a signed session token.
func (s *Service) OTPLogin(ctx context.Context, username, code string) (string, error) {
	if username == "" || code == "" {
		return "", ErrMissingFields
	}

	user, err := s.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	secret, err := totp.DecryptSecret(user.TOTPSecret, s.encKey)
	if err != nil {
		return "", fmt.Errorf("failed to unseal TOTP secret: %w", err)
	}

	now := s.now()
	ok, err := totp.VerifyAt(secret, code, now)
	if err != nil {
		if errors.Is(err, totp.ErrInvalidCode) {
			return "", ErrInvalidOTP
		}
		return "", fmt.Errorf("failed to verify OTP: %w", err)
	}
	if !ok {
		return "", ErrInvalidOTP
	}

	if err := s.guard.Consume(ctx, username, code, replayTTL); err != nil {
		return "", err
	}

	token, err := s.tokens.Generate(jwt.StandardClaims{
		Subject:   user.Username,
		Issuer:    s.issuer,
		ExpiresAt: now.Add(s.tokenTTL).Unix(),
		IssuedAt:  now.Unix(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.log.InfoContext(ctx, "login completed",
		logger.Username(username),
		logger.Component("auth"),
	)

	return token, nil
}

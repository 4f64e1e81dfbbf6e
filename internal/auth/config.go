package auth

import "time"

type Config struct {
	SigningKey          string        `env:"AUTH_SIGNING_KEY,required"`          // SigningKey is the process-wide HMAC key for session tokens. Rotating it invalidates every outstanding token.
	TokenTTL            time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"10m"`    // TokenTTL is the session token lifetime.
	Issuer              string        `env:"AUTH_ISSUER" envDefault:"shopgate"`  // Issuer is the name shown in authenticator apps.
	SecretEncryptionKey string        `env:"TOTP_ENCRYPTION_KEY,required"`       // SecretEncryptionKey is a base64-encoded 32-byte AES-256 key sealing TOTP secrets at rest.
	QRCodeSize          int           `env:"AUTH_QR_CODE_SIZE" envDefault:"256"` // QRCodeSize is the provisioning image size in pixels.
}

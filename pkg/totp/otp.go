package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// Digits is the code length produced by this package (RFC 6238 standard).
	Digits = 6
	// Period is the code validity window in seconds (RFC 6238 standard).
	Period = 30
	// Algorithm identifies the HMAC construction in provisioning URIs.
	Algorithm = "SHA1"

	// secretSize is 160 bits, the RFC 4226 recommended secret width.
	secretSize = 20
)

// secretRegex enforces Base32 format: uppercase A-Z, digits 2-7, optional padding.
var secretRegex = regexp.MustCompile("^[A-Z2-7]+=*$")

// codeRegex matches exactly Digits decimal digits.
var codeRegex = regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, Digits))

// Params describes a TOTP enrollment for provisioning URI generation.
type Params struct {
	Secret      string // Base32-encoded secret key (required)
	AccountName string // User identifier, typically a username or email (required)
	Issuer      string // Service name shown in authenticator apps (required)
}

func (p Params) validate() error {
	if p.Secret == "" {
		return ErrMissingSecret
	}
	if !secretRegex.MatchString(p.Secret) {
		return ErrInvalidSecret
	}
	if p.AccountName == "" {
		return ErrMissingAccountName
	}
	if p.Issuer == "" {
		return ErrMissingIssuer
	}
	return nil
}

// GenerateSecret creates a new Base32-encoded random secret for TOTP enrollment.
func GenerateSecret() (string, error) {
	buf := make([]byte, secretSize)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecret, err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf), nil
}

// ProvisioningURI builds an otpauth:// URI for the given enrollment, following
// the Key Uri Format consumed by Google Authenticator and compatible apps:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func ProvisioningURI(p Params) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(p.Issuer),
		url.PathEscape(p.AccountName),
	)

	query := url.Values{}
	query.Set("secret", p.Secret)
	query.Set("issuer", p.Issuer)
	query.Set("algorithm", Algorithm)
	query.Set("digits", fmt.Sprintf("%d", Digits))
	query.Set("period", fmt.Sprintf("%d", Period))

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// CodeAt derives the code for the 30-second window containing t.
func CodeAt(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", Digits, hotp(key, t.Unix()/Period)), nil
}

// Code derives the code for the current window.
func Code(secret string) (string, error) {
	return CodeAt(secret, time.Now())
}

// VerifyAt checks a submitted code against the window containing t and the
// immediately adjacent windows to tolerate clock drift. Codes are compared in
// constant time. A false result with a nil error means the code simply did
// not match.
func VerifyAt(secret, code string, t time.Time) (bool, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}

	code = strings.TrimSpace(code)
	if !codeRegex.MatchString(code) {
		return false, ErrInvalidCode
	}

	counter := t.Unix() / Period
	for i := int64(-1); i <= 1; i++ {
		want := fmt.Sprintf("%0*d", Digits, hotp(key, counter+i))
		if subtle.ConstantTimeCompare([]byte(want), []byte(code)) == 1 {
			return true, nil
		}
	}

	return false, nil
}

// Verify checks a submitted code against the current window, see VerifyAt.
func Verify(secret, code string) (bool, error) {
	return VerifyAt(secret, code, time.Now())
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.TrimSpace(strings.ToUpper(secret))
	if !secretRegex.MatchString(secret) {
		return nil, ErrInvalidSecret
	}
	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}

// hotp implements the RFC 4226 HMAC-based one-time password algorithm,
// truncating an HMAC-SHA1 of the counter to a Digits-wide decimal code.
func hotp(key []byte, counter int64) int {
	// Counter is encoded big-endian into 8 bytes per RFC 4226.
	msg := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		msg[i] = byte(counter & 0xff)
		counter >>= 8
	}

	mac := hmac.New(sha1.New, key)
	mac.Write(msg)
	sum := mac.Sum(nil)

	// Dynamic truncation: low 4 bits of the last byte select the offset,
	// the MSB of the extracted word is cleared to keep the value positive.
	offset := sum[len(sum)-1] & 0x0f
	code := (int(sum[offset]&0x7f) << 24) |
		(int(sum[offset+1]) << 16) |
		(int(sum[offset+2]) << 8) |
		int(sum[offset+3])

	return code % int(math.Pow10(Digits))
}

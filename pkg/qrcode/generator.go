// Package qrcode renders strings, typically otpauth provisioning URIs, into
// scannable PNG images.
package qrcode

import (
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when the content is empty or whitespace only.
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrFailedToGenerate is returned when PNG encoding fails.
	ErrFailedToGenerate = errors.New("failed to generate QR code")
)

// defaultSize in pixels, used when the caller passes a non-positive size.
const defaultSize = 256

// Generate encodes content into a PNG QR code of the given pixel size.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrFailedToGenerate, err)
	}
	return png, nil
}

package qrcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shopgate/pkg/qrcode"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestGenerate(t *testing.T) {
	t.Parallel()

	img, err := qrcode.Generate("otpauth://totp/shopgate:alice?secret=ABCDEFGH", 256)
	require.NoError(t, err)
	require.Greater(t, len(img), len(pngMagic))
	assert.Equal(t, pngMagic, img[:len(pngMagic)])
}

func TestGenerate_DefaultSize(t *testing.T) {
	t.Parallel()

	img, err := qrcode.Generate("hello", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, img)
}

func TestGenerate_EmptyContent(t *testing.T) {
	t.Parallel()

	_, err := qrcode.Generate("  ", 256)
	assert.ErrorIs(t, err, qrcode.ErrEmptyContent)
}

package totp_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shopgate/pkg/totp"
)

func TestEncryptDecryptSecret(t *testing.T) {
	t.Parallel()

	key, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)
	require.Len(t, key, totp.KeySize)

	secret, err := totp.GenerateSecret()
	require.NoError(t, err)

	sealed, err := totp.EncryptSecret(secret, key)
	require.NoError(t, err)
	assert.NotEqual(t, secret, sealed)

	plain, err := totp.DecryptSecret(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, secret, plain)
}

func TestEncryptSecret_Nondeterministic(t *testing.T) {
	t.Parallel()

	key, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)

	a, err := totp.EncryptSecret("SECRET", key)
	require.NoError(t, err)
	b, err := totp.EncryptSecret("SECRET", key)
	require.NoError(t, err)

	// GCM uses a random nonce per call.
	assert.NotEqual(t, a, b)
}

func TestDecryptSecret_WrongKey(t *testing.T) {
	t.Parallel()

	key, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)
	otherKey, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)

	sealed, err := totp.EncryptSecret("SECRET", key)
	require.NoError(t, err)

	_, err = totp.DecryptSecret(sealed, otherKey)
	assert.ErrorIs(t, err, totp.ErrFailedToDecryptSecret)
}

func TestDecryptSecret_Invalid(t *testing.T) {
	t.Parallel()

	key, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)

	_, err = totp.DecryptSecret("not base64!!!", key)
	assert.ErrorIs(t, err, totp.ErrFailedToDecryptSecret)

	short := base64.StdEncoding.EncodeToString([]byte{1, 2, 3})
	_, err = totp.DecryptSecret(short, key)
	assert.ErrorIs(t, err, totp.ErrCipherTooShort)

	_, err = totp.EncryptSecret("SECRET", []byte("short"))
	assert.ErrorIs(t, err, totp.ErrInvalidEncryptionKeyLength)
}

func TestDecodeEncryptionKey(t *testing.T) {
	t.Parallel()

	key, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)

	decoded, err := totp.DecodeEncryptionKey(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, decoded)

	_, err = totp.DecodeEncryptionKey(base64.StdEncoding.EncodeToString([]byte("too short")))
	assert.ErrorIs(t, err, totp.ErrInvalidEncryptionKeyLength)

	_, err = totp.DecodeEncryptionKey("%%%")
	assert.Error(t, err)
}

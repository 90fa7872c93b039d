package cryptox

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/dmitrijs2005/remood/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T, password string) string {
	t.Helper()
	k, err := DeriveKey(password)
	require.NoError(t, err)
	return k
}

func TestDeriveKey_Deterministic(t *testing.T) {
	k1 := mustKey(t, "pw")
	k2 := mustKey(t, "pw")
	assert.Equal(t, k1, k2)

	raw, err := base64.StdEncoding.DecodeString(k1)
	require.NoError(t, err)
	assert.Len(t, raw, KeySize)
}

func TestDeriveKey_KnownVector(t *testing.T) {
	// SHA-256("abc")
	assert.Equal(t, "ungWv48Bz+pBQUDeXa4iI7ADYaOWF3qctBD/YfIAFa0=", mustKey(t, "abc"))
}

func TestDeriveKey_DifferentPasswords(t *testing.T) {
	assert.NotEqual(t, mustKey(t, "pw-1"), mustKey(t, "pw-2"))
}

func TestDeriveKey_InvalidInput(t *testing.T) {
	_, err := DeriveKey("")
	require.ErrorIs(t, err, common.ErrEncryption)

	_, err = DeriveKey(string([]byte{0xff, 0xfe}))
	require.ErrorIs(t, err, common.ErrEncryption)
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	key := mustKey(t, "secret-password")

	for _, p := range []string{
		"Hello",
		"x",
		"Heute war ein wundervoller Tag! Ümlaute, emoji 😊 and\nnewlines",
		strings.Repeat("long entry ", 1000),
	} {
		env, err := Encrypt(p, key)
		require.NoError(t, err)

		got, err := Decrypt(env, key)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestEncrypt_EnvelopeLayout(t *testing.T) {
	orig := randBytes
	t.Cleanup(func() { randBytes = orig })

	fixed := bytes.Repeat([]byte{0x42}, NonceSize)
	randBytes = func(n int) []byte { return append([]byte(nil), fixed[:n]...) }

	key := mustKey(t, "pw")
	env, err := Encrypt("Hello", key)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(env)
	require.NoError(t, err)
	assert.Len(t, raw, len("Hello")+Overhead)
	assert.Equal(t, fixed, raw[:NonceSize])
}

func TestEncrypt_NonceUniqueness(t *testing.T) {
	key := mustKey(t, "pw")

	a, err := Encrypt("same text", key)
	require.NoError(t, err)
	b, err := Encrypt("same text", key)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestEncrypt_MissingInput(t *testing.T) {
	key := mustKey(t, "pw")

	tests := []struct {
		name      string
		plaintext string
		key       string
	}{
		{name: "no key", plaintext: "text", key: ""},
		{name: "no plaintext", plaintext: "", key: key},
		{name: "key not base64", plaintext: "text", key: "%%%"},
		{name: "key wrong size", plaintext: "text", key: base64.StdEncoding.EncodeToString([]byte("short"))},
		{name: "aes-128 sized key", plaintext: "text", key: base64.StdEncoding.EncodeToString(make([]byte, 16))},
		{name: "plaintext not utf8", plaintext: string([]byte{0xc3, 0x28}), key: key},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encrypt(tt.plaintext, tt.key)
			require.ErrorIs(t, err, common.ErrEncryption)
		})
	}
}

func TestDecrypt_TamperRejection(t *testing.T) {
	key := mustKey(t, "pw")
	env, err := Encrypt("do not touch", key)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(env)
	require.NoError(t, err)

	for i := range raw {
		tampered := append([]byte(nil), raw...)
		tampered[i] ^= 0x01

		got, err := Decrypt(base64.StdEncoding.EncodeToString(tampered), key)
		require.ErrorIs(t, err, common.ErrDecryption, "byte %d", i)
		require.Empty(t, got, "byte %d", i)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	env, err := Encrypt("for k1 only", mustKey(t, "k1"))
	require.NoError(t, err)

	got, err := Decrypt(env, mustKey(t, "k2"))
	require.ErrorIs(t, err, common.ErrDecryption)
	assert.Empty(t, got)
}

func TestDecrypt_MalformedInput(t *testing.T) {
	key := mustKey(t, "pw")

	tests := []struct {
		name     string
		envelope string
		key      string
	}{
		{name: "no key", envelope: "AAAA", key: ""},
		{name: "no envelope", envelope: "", key: key},
		{name: "not base64", envelope: "not*base64", key: key},
		{name: "shorter than nonce", envelope: base64.StdEncoding.EncodeToString([]byte("short")), key: key},
		{name: "nonce only", envelope: base64.StdEncoding.EncodeToString(make([]byte, NonceSize)), key: key},
		{name: "truncated tag", envelope: base64.StdEncoding.EncodeToString(make([]byte, Overhead-1)), key: key},
		{name: "aes-128 sized key", envelope: base64.StdEncoding.EncodeToString(make([]byte, Overhead+4)), key: base64.StdEncoding.EncodeToString(make([]byte, 16))},
		{name: "plaintext stored as is", envelope: "Heute war ein guter Tag", key: key},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.envelope, tt.key)
			require.ErrorIs(t, err, common.ErrDecryption)
		})
	}
}

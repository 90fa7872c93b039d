// Package cryptox implements the client-side cryptography of ReMood: key
// derivation from the user's password and authenticated encryption of entry
// content.
//
// Keys and envelopes travel as standard base64 text so they can be stored in
// single-string storage slots and in JSON bodies unchanged. The envelope layout
// is fixed:
//
//	[nonce:12][ciphertext+tag:rest]
//
// and is byte-compatible with envelopes produced by the ReMood web client.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/remood/internal/common"
)

const (
	// NonceSize is the AES-GCM nonce length prepended to every envelope.
	NonceSize = 12
	// TagSize is the AES-GCM authentication tag length.
	TagSize = 16
	// KeySize is the length of a derived key (AES-256).
	KeySize = sha256.Size
	// Overhead is the number of bytes an envelope adds to the plaintext
	// before base64 encoding.
	Overhead = NonceSize + TagSize
)

// randBytes is a test seam for nonce generation.
var randBytes = common.GenerateRandByteArray

// DeriveKey turns a password into a base64-encoded symmetric key.
//
// The key is the SHA-256 digest of the UTF-8 password bytes, so the same
// password always yields the same key and the key cannot be inverted to the
// password. An empty or non-UTF-8 password is rejected with
// common.ErrEncryption.
func DeriveKey(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: empty password", common.ErrEncryption)
	}
	if !utf8.ValidString(password) {
		return "", fmt.Errorf("%w: password is not valid UTF-8", common.ErrEncryption)
	}

	sum := sha256.Sum256([]byte(password))
	return base64.StdEncoding.EncodeToString(sum[:]), nil
}

// Encrypt seals plaintext under key with AES-GCM and returns the base64
// envelope.
//
// A fresh random nonce is generated for every call, so encrypting the same
// plaintext twice yields two different envelopes. Any failure is reported as
// common.ErrEncryption.
//
// Example:
//
//	key, _ := cryptox.DeriveKey("correct horse")
//	env, err := cryptox.Encrypt("Hello", key)
//	if err != nil {
//	    return err
//	}
//	msg, _ := cryptox.Decrypt(env, key) // "Hello"
func Encrypt(plaintext, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: missing key", common.ErrEncryption)
	}
	if plaintext == "" {
		return "", fmt.Errorf("%w: missing plaintext", common.ErrEncryption)
	}
	if !utf8.ValidString(plaintext) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", common.ErrEncryption)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrEncryption, err)
	}

	nonce := randBytes(NonceSize)

	// nonce doubles as the destination prefix: Seal appends to it
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an envelope produced by Encrypt.
//
// Every failure (missing input, malformed base64, short envelope, wrong key,
// tampered bytes) is reported as common.ErrDecryption and no plaintext is
// returned.
func Decrypt(envelope, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: missing key", common.ErrDecryption)
	}
	if envelope == "" {
		return "", fmt.Errorf("%w: missing envelope", common.ErrDecryption)
	}

	data, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return "", fmt.Errorf("%w: malformed envelope encoding", common.ErrDecryption)
	}
	if len(data) < Overhead {
		return "", fmt.Errorf("%w: envelope too short", common.ErrDecryption)
	}

	aead, err := newAEAD(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}

	nonce, ciphertext := data[:NonceSize], data[NonceSize:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", common.ErrDecryption)
	}
	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: plaintext is not valid UTF-8", common.ErrDecryption)
	}

	return string(plaintext), nil
}

func newAEAD(key string) (cipher.AEAD, error) {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("malformed key encoding")
	}
	defer common.WipeByteArray(raw)
	if len(raw) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", KeySize, len(raw))
	}

	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid key: %v", err)
	}

	return cipher.NewGCMWithNonceSize(block, NonceSize)
}

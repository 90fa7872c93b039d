// Package common defines shared constants and sentinel errors used across
// the client layers of ReMood. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Session errors: bad credentials, missing or rejected token.
	ErrAuthentication = errors.New("authentication failed")

	// Cryptographic errors.
	ErrEncryption = errors.New("encryption failed")
	ErrDecryption = errors.New("decryption failed")

	// Remote collection errors.
	ErrNotFound = errors.New("not found")
	ErrRequest  = errors.New("request failed")

	// Validation errors for entry input.
	ErrValidation = errors.New("validation error")
)

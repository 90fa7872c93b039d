// Package common contains shared constants and sentinel errors used across
// ReMood client components.
package common

// AuthorizationHeaderName carries the bearer access token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// Durable local storage slot names. Each slot holds a single string value.
const (
	SlotToken         = "token"
	SlotUsername      = "username"
	SlotEncryptionKey = "encryption_key"
	SlotDarkMode      = "darkMode"
)

// DecryptionFailedPlaceholder replaces the content of a private entry that
// could not be decrypted with the current key.
const DecryptionFailedPlaceholder = "Decryption failed. Please log in again."

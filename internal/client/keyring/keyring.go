// Package keyring stores the session encryption key in the operating
// system's credential store instead of the local database.
package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const serviceName = "remood"

// SaveKey stores key for account, replacing any previous value.
func SaveKey(account, key string) error {
	return keyring.Set(serviceName, account, key)
}

// GetKey returns the key stored for account, or "" when there is none.
func GetKey(account string) (string, error) {
	key, err := keyring.Get(serviceName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return key, err
}

// DeleteKey removes the key stored for account. Deleting a missing key is
// not an error.
func DeleteKey(account string) error {
	err := keyring.Delete(serviceName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

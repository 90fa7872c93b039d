package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/remood/internal/client/models"
	"github.com/dmitrijs2005/remood/internal/common"
	"github.com/dmitrijs2005/remood/internal/cryptox"
)

// ErrNoKey is the reason recorded when a private entry arrives while no
// encryption key is persisted.
var ErrNoKey = fmt.Errorf("%w: no encryption key present", common.ErrDecryption)

// Decryption is the outcome of opening one entry: either Decrypted or
// Undecryptable.
type Decryption interface {
	decryption()
}

// Decrypted holds an entry whose content is readable plaintext, either
// recovered from its envelope or never encrypted.
type Decrypted struct {
	Entry models.Entry
}

// Undecryptable holds an entry as received, with the envelope still in its
// content, and the reason it could not be opened.
type Undecryptable struct {
	Entry  models.Entry
	Reason error
}

func (Decrypted) decryption()     {}
func (Undecryptable) decryption() {}

// Open applies key to a private entry. Entries that are not encrypted pass
// through unchanged.
func Open(e models.Entry, key string) Decryption {
	if !e.IsEncrypted {
		return Decrypted{Entry: e}
	}
	if key == "" {
		return Undecryptable{Entry: e, Reason: ErrNoKey}
	}

	plaintext, err := cryptox.Decrypt(e.Content, key)
	if err != nil {
		return Undecryptable{Entry: e, Reason: err}
	}

	e.Content = plaintext
	return Decrypted{Entry: e}
}

// Collapse turns an outcome into the record shown to the user. Undecryptable
// content is replaced by a placeholder so ciphertext never reaches the view.
func Collapse(d Decryption) models.Entry {
	switch v := d.(type) {
	case Decrypted:
		v.Entry.DecryptionFailed = false
		return v.Entry
	case Undecryptable:
		v.Entry.DecryptionFailed = true
		v.Entry.Content = common.DecryptionFailedPlaceholder
		return v.Entry
	default:
		panic(fmt.Sprintf("unexpected decryption outcome %T", d))
	}
}

// IsKeyMissing reports whether an Undecryptable outcome was caused by the
// absence of a key rather than by a bad envelope.
func IsKeyMissing(d Decryption) bool {
	u, ok := d.(Undecryptable)
	return ok && errors.Is(u.Reason, ErrNoKey)
}

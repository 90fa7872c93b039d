// Package localstore exposes the client's durable local storage as typed
// single-string slots: session token, username, encryption key and the
// dark-mode preference.
//
// Slots live in the metadata table of the local SQLite database. The
// encryption key can optionally be kept in the OS keyring instead (see
// BackendKeyring); the other slots always stay in the database.
package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/remood/internal/client/keyring"
	"github.com/dmitrijs2005/remood/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/remood/internal/common"
	"github.com/dmitrijs2005/remood/internal/dbx"
)

// Backend selects where the encryption key slot is stored.
type Backend string

const (
	BackendSQLite  Backend = "sqlite"
	BackendKeyring Backend = "keyring"
)

var ErrUnknownBackend = errors.New("unknown key backend")

// Store reads and writes the durable slots.
type Store struct {
	db      *sql.DB
	repo    metadata.Repository
	backend Backend
}

// New binds a Store to an already migrated database.
func New(db *sql.DB, backend Backend) (*Store, error) {
	switch backend {
	case "":
		backend = BackendSQLite
	case BackendSQLite, BackendKeyring:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
	return &Store{db: db, repo: metadata.NewSQLiteRepository(db), backend: backend}, nil
}

func (s *Store) keyInDB() bool {
	return s.backend == BackendSQLite
}

func (s *Store) getString(ctx context.Context, slot string) (string, error) {
	v, err := s.repo.Get(ctx, slot)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Token returns the persisted access token, or "" when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.getString(ctx, common.SlotToken)
}

// Username returns the persisted username, or "" when logged out.
func (s *Store) Username(ctx context.Context) (string, error) {
	return s.getString(ctx, common.SlotUsername)
}

// EncryptionKey returns the persisted base64 key, or "" when none is present.
func (s *Store) EncryptionKey(ctx context.Context) (string, error) {
	if s.keyInDB() {
		return s.getString(ctx, common.SlotEncryptionKey)
	}
	key, err := keyring.GetKey(common.SlotEncryptionKey)
	if err != nil {
		return "", fmt.Errorf("failed to read key from keyring: %w", err)
	}
	return key, nil
}

// SaveSession persists token, username and key, overwriting whatever a
// previous session left in the slots.
func (s *Store) SaveSession(ctx context.Context, token, username, key string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.SlotToken, []byte(token)); err != nil {
			return err
		}
		if err := repo.Set(ctx, common.SlotUsername, []byte(username)); err != nil {
			return err
		}
		if s.keyInDB() {
			return repo.Set(ctx, common.SlotEncryptionKey, []byte(key))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if !s.keyInDB() {
		if err := keyring.SaveKey(common.SlotEncryptionKey, key); err != nil {
			return fmt.Errorf("save key to keyring: %w", err)
		}
	}
	return nil
}

// ClearSession removes token, username and key. The dark-mode slot is kept.
// Every slot is attempted even if an earlier one fails.
func (s *Store) ClearSession(ctx context.Context) error {
	var errs []error

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		slots := []string{common.SlotToken, common.SlotUsername, common.SlotEncryptionKey}
		for _, slot := range slots {
			if err := repo.Delete(ctx, slot); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("clear session: %w", err))
	}

	if !s.keyInDB() {
		if err := keyring.DeleteKey(common.SlotEncryptionKey); err != nil {
			errs = append(errs, fmt.Errorf("delete key from keyring: %w", err))
		}
	}

	return errors.Join(errs...)
}

// DarkMode reports the persisted theme preference; unset means false.
func (s *Store) DarkMode(ctx context.Context) (bool, error) {
	v, err := s.getString(ctx, common.SlotDarkMode)
	if err != nil || v == "" {
		return false, err
	}
	dark, err := strconv.ParseBool(v)
	if err != nil {
		return false, nil
	}
	return dark, nil
}

// SetDarkMode persists the theme preference as "true" or "false".
func (s *Store) SetDarkMode(ctx context.Context, dark bool) error {
	return s.repo.Set(ctx, common.SlotDarkMode, []byte(strconv.FormatBool(dark)))
}

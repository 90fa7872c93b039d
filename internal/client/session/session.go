// Package session owns the authenticated-user context of the client: the
// access token, the username and the lifecycle of the encryption key.
//
// A single *Session is created at startup and handed to the entry cache and
// the CLI. It moves between two states:
//
//	Anonymous --Login--> Authenticated --Logout--> Anonymous
//
// The key itself is never held in memory. It lives in durable storage from a
// successful Login until Logout and is read back on every use.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/remood/internal/common"
	"github.com/dmitrijs2005/remood/internal/cryptox"
	"github.com/dmitrijs2005/remood/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Authenticator is the part of the API client the session needs.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) error
}

// Storage persists the session slots across process restarts.
type Storage interface {
	Token(ctx context.Context) (string, error)
	Username(ctx context.Context) (string, error)
	EncryptionKey(ctx context.Context) (string, error)
	SaveSession(ctx context.Context, token, username, key string) error
	ClearSession(ctx context.Context) error
}

// EntryReloader is the entry cache as seen by the session.
type EntryReloader interface {
	ReloadEntries(ctx context.Context) error
	ClearEntries()
}

// Navigator moves the user interface to the login screen.
type Navigator interface {
	RedirectToLogin(ctx context.Context)
}

type Session struct {
	mu       sync.RWMutex
	token    string
	username string

	api   Authenticator
	store Storage
	cache EntryReloader
	nav   Navigator
	log   logging.Logger
	now   func() time.Time
}

// New returns an Anonymous session. Call Restore to pick up a session
// persisted by a previous run.
func New(api Authenticator, store Storage, log logging.Logger) *Session {
	if log == nil {
		log = logging.Discard()
	}
	return &Session{api: api, store: store, log: log, now: time.Now}
}

// Attach wires the entry cache reloaded on login and cleared on logout.
func (s *Session) Attach(cache EntryReloader) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = cache
}

// SetNavigator wires the redirect used by HandleUnauthorized.
func (s *Session) SetNavigator(nav Navigator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = nav
}

func (s *Session) collaborators() (EntryReloader, Navigator) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache, s.nav
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return Anonymous
	}
	return Authenticated
}

func (s *Session) IsAuthenticated() bool {
	return s.State() == Authenticated
}

// Token returns the bearer token, or "" when Anonymous.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Username returns the logged-in user, or "" when Anonymous.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Key returns the persisted encryption key, or "" when none is present.
// Storage is consulted on every call.
func (s *Session) Key(ctx context.Context) (string, error) {
	return s.store.EncryptionKey(ctx)
}

// Login authenticates, derives and persists the key, then reloads entries.
//
// Any failure before the session is persisted leaves it Anonymous and is
// reported as common.ErrAuthentication. A failed reload after that point is
// returned wrapped but the session stays Authenticated.
func (s *Session) Login(ctx context.Context, username, password string) error {
	token, err := s.api.Authenticate(ctx, username, password)
	if err != nil {
		if !errors.Is(err, common.ErrAuthentication) {
			err = fmt.Errorf("%w: %w", common.ErrAuthentication, err)
		}
		return err
	}

	key, err := cryptox.DeriveKey(password)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrAuthentication, err)
	}

	// single-slot storage: saving overwrites any key left by a previous session
	if err := s.store.SaveSession(ctx, token, username, key); err != nil {
		if cerr := s.store.ClearSession(context.WithoutCancel(ctx)); cerr != nil {
			s.log.Error(ctx, "failed to roll back partial session", "error", cerr)
		}
		return fmt.Errorf("%w: persist session: %w", common.ErrAuthentication, err)
	}

	s.mu.Lock()
	s.token = token
	s.username = username
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "username", username)

	cache, _ := s.collaborators()
	if cache != nil {
		if err := cache.ReloadEntries(ctx); err != nil {
			return fmt.Errorf("reload entries: %w", err)
		}
	}
	return nil
}

// Logout clears token, username, the persisted key and the cached entries.
// It cannot fail; storage errors are logged.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	username := s.username
	s.token = ""
	s.username = ""
	s.mu.Unlock()

	cache, _ := s.collaborators()
	if cache != nil {
		cache.ClearEntries()
	}

	if err := s.store.ClearSession(context.WithoutCancel(ctx)); err != nil {
		s.log.Error(ctx, "failed to clear persisted session", "error", err)
	}

	s.log.Info(ctx, "logged out", "username", username)
}

// Register creates a new account. The session state is not changed.
func (s *Session) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}
	return s.api.Register(ctx, username, password)
}

// HandleUnauthorized is called when the server rejects the token: the
// session is logged out and the user is sent to the login screen.
func (s *Session) HandleUnauthorized(ctx context.Context) {
	s.log.Warn(ctx, "server rejected session token")
	s.Logout(ctx)

	if _, nav := s.collaborators(); nav != nil {
		nav.RedirectToLogin(ctx)
	}
}

// Restore loads a session persisted by a previous run. A token whose JWT
// expiry has passed is discarded. Opaque tokens are kept as is; the server
// decides their validity on first use.
func (s *Session) Restore(ctx context.Context) (State, error) {
	token, err := s.store.Token(ctx)
	if err != nil {
		return Anonymous, fmt.Errorf("restore session: %w", err)
	}
	username, err := s.store.Username(ctx)
	if err != nil {
		return Anonymous, fmt.Errorf("restore session: %w", err)
	}

	if token == "" || username == "" {
		if token != "" || username != "" {
			s.Logout(ctx)
		}
		return Anonymous, nil
	}

	if s.expired(token) {
		s.log.Info(ctx, "persisted token expired", "username", username)
		s.Logout(ctx)
		return Anonymous, nil
	}

	s.mu.Lock()
	s.token = token
	s.username = username
	s.mu.Unlock()

	return Authenticated, nil
}

func (s *Session) expired(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !claims.ExpiresAt.After(s.now())
}

package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/remood/internal/client/client"
	"github.com/dmitrijs2005/remood/internal/client/models"
	"github.com/dmitrijs2005/remood/internal/common"
	"github.com/dmitrijs2005/remood/internal/cryptox"
	"github.com/dmitrijs2005/remood/internal/logging"
	"golang.org/x/sync/errgroup"
)

const DefaultDecryptWorkers = 8

// Session is the view of the credential session the cache works with.
type Session interface {
	Token() string
	Username() string
	Key(ctx context.Context) (string, error)
	HandleUnauthorized(ctx context.Context)
}

// EntryCache mirrors the remote entry collection for the current session.
//
// Contract:
//   - entries holds the user's own entries, private ones decrypted or
//     flagged with a placeholder; at most one record per id.
//   - publicEntries holds the unauthenticated public feed.
//   - Private content is encrypted before it leaves the process. A missing
//     key on that path is fatal (common.ErrEncryption) and nothing is sent.
//   - Decryption failures on the read path never surface as errors.
//   - A 401 from the server logs the session out and surfaces as
//     common.ErrAuthentication.
type EntryCache interface {
	FetchEntries(ctx context.Context) ([]models.Entry, error)
	ReloadEntries(ctx context.Context) error
	FetchPublicEntries(ctx context.Context) ([]models.Entry, error)
	FetchUserPublicEntries(ctx context.Context, username string) ([]models.Entry, error)
	CreateEntry(ctx context.Context, in models.EntryInput) (models.Entry, error)
	UpdateEntry(ctx context.Context, id int64, in models.EntryInput) (models.Entry, error)
	GetEntry(ctx context.Context, id int64) (models.Entry, error)
	Entries() []models.Entry
	PublicEntries() []models.Entry
	ClearEntries()
}

type entryCache struct {
	mu            sync.Mutex
	entries       []models.Entry
	publicEntries []models.Entry

	client  client.Client
	session Session
	log     logging.Logger
	workers int
}

// NewEntryCache returns an empty cache. workers bounds how many entries are
// decrypted at once; values below one select DefaultDecryptWorkers.
func NewEntryCache(c client.Client, s Session, log logging.Logger, workers int) EntryCache {
	if log == nil {
		log = logging.Discard()
	}
	if workers < 1 {
		workers = DefaultDecryptWorkers
	}
	return &entryCache{client: c, session: s, log: log, workers: workers}
}

var errSessionEnded = fmt.Errorf("%w: session ended", common.ErrAuthentication)

func (c *entryCache) remoteErr(ctx context.Context, op string, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		c.session.HandleUnauthorized(ctx)
		return fmt.Errorf("%s: %w: %w", op, common.ErrAuthentication, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (c *entryCache) token() (string, error) {
	token := c.session.Token()
	if token == "" {
		return "", fmt.Errorf("%w: not logged in", common.ErrAuthentication)
	}
	return token, nil
}

// key reads the current key. A storage failure is treated like an absent
// key: reads degrade to placeholders, writes fail with ErrEncryption.
func (c *entryCache) key(ctx context.Context) (string, error) {
	key, err := c.session.Key(ctx)
	if err != nil {
		c.log.Error(ctx, "failed to read encryption key", "error", err)
		return "", err
	}
	return key, nil
}

func (c *entryCache) collapse(ctx context.Context, d Decryption) models.Entry {
	if u, ok := d.(Undecryptable); ok {
		if IsKeyMissing(d) {
			c.log.Warn(ctx, "entry not decrypted: no encryption key, log in again", "entry_id", u.Entry.ID)
		} else {
			c.log.Warn(ctx, "entry could not be decrypted", "entry_id", u.Entry.ID, "reason", u.Reason)
		}
	}
	return Collapse(d)
}

// openOwned decrypts the current user's private entries concurrently.
// Every task yields its own outcome and none can stop its siblings, so the
// result always has one record per input, in input order.
func (c *entryCache) openOwned(ctx context.Context, raw []models.Entry, key, username string) []models.Entry {
	out := make([]models.Entry, len(raw))

	var g errgroup.Group
	g.SetLimit(c.workers)

	for i, e := range raw {
		g.Go(func() error {
			var d Decryption = Decrypted{Entry: e}
			if e.IsEncrypted && e.Username == username {
				d = Open(e, key)
			}
			out[i] = c.collapse(ctx, d)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// openEcho applies the read policy to an entry the server echoed back after
// a write.
func (c *entryCache) openEcho(ctx context.Context, e models.Entry) models.Entry {
	if !e.IsEncrypted {
		return Collapse(Decrypted{Entry: e})
	}
	key, _ := c.key(ctx)
	return c.collapse(ctx, Open(e, key))
}

// FetchEntries replaces entries with the user's collection from the server.
// The result is dropped if the session ended while the request was in
// flight.
func (c *entryCache) FetchEntries(ctx context.Context) ([]models.Entry, error) {
	token, err := c.token()
	if err != nil {
		return nil, err
	}

	raw, err := c.client.ListEntries(ctx, token)
	if err != nil {
		return nil, c.remoteErr(ctx, "list entries", err)
	}

	key, _ := c.key(ctx)
	out := c.openOwned(ctx, raw, key, c.session.Username())

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Token() != token {
		return nil, errSessionEnded
	}
	c.entries = out

	c.log.Debug(ctx, "entries fetched", "count", len(out))
	return slices.Clone(out), nil
}

// ReloadEntries clears entries and fetches them again, so every private
// entry is decrypted under the current key.
func (c *entryCache) ReloadEntries(ctx context.Context) error {
	c.ClearEntries()
	_, err := c.FetchEntries(ctx)
	return err
}

// FetchPublicEntries loads the public feed and replaces publicEntries with
// it. No session is needed.
func (c *entryCache) FetchPublicEntries(ctx context.Context) ([]models.Entry, error) {
	list, err := c.client.ListPublicEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public entries: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.publicEntries = list
	return slices.Clone(list), nil
}

// FetchUserPublicEntries returns one user's public entries without caching
// them. An unknown user yields an error matching common.ErrNotFound.
func (c *entryCache) FetchUserPublicEntries(ctx context.Context, username string) ([]models.Entry, error) {
	list, err := c.client.ListUserPublicEntries(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list public entries of %s: %w", username, err)
	}
	return list, nil
}

// seal validates in and, for private entries, replaces its content with the
// envelope.
func (c *entryCache) seal(ctx context.Context, in models.EntryInput) (models.EntryInput, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return in, err
	}
	if !in.IsEncrypted {
		return in, nil
	}

	key, err := c.key(ctx)
	if err != nil {
		return in, fmt.Errorf("%w: read key: %w", common.ErrEncryption, err)
	}
	if key == "" {
		return in, fmt.Errorf("%w: encryption key not found, please log in again", common.ErrEncryption)
	}

	envelope, err := cryptox.Encrypt(in.Content, key)
	if err != nil {
		return in, err
	}
	in.Content = envelope
	return in, nil
}

// CreateEntry seals and sends in, then appends the created record to
// entries, or replaces the record with the same id. A public entry is also
// appended to publicEntries. Nothing is cached if the session ended meanwhile.
func (c *entryCache) CreateEntry(ctx context.Context, in models.EntryInput) (models.Entry, error) {
	sealed, err := c.seal(ctx, in)
	if err != nil {
		return models.Entry{}, err
	}

	token, err := c.token()
	if err != nil {
		return models.Entry{}, err
	}

	created, err := c.client.CreateEntry(ctx, token, sealed)
	if err != nil {
		return models.Entry{}, c.remoteErr(ctx, "create entry", err)
	}

	shown := c.openEcho(ctx, created)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Token() != token {
		return shown, nil
	}

	if i := indexOf(c.entries, shown.ID); i >= 0 {
		c.entries[i] = shown
	} else {
		c.entries = append(c.entries, shown)
	}
	if !sealed.IsEncrypted {
		c.publicEntries = append(c.publicEntries, shown)
	}

	return shown, nil
}

// UpdateEntry sends in and replaces the cached record with the same id. An
// id that is not cached is not inserted.
func (c *entryCache) UpdateEntry(ctx context.Context, id int64, in models.EntryInput) (models.Entry, error) {
	sealed, err := c.seal(ctx, in)
	if err != nil {
		return models.Entry{}, err
	}

	token, err := c.token()
	if err != nil {
		return models.Entry{}, err
	}

	updated, err := c.client.UpdateEntry(ctx, token, id, sealed)
	if err != nil {
		return models.Entry{}, c.remoteErr(ctx, "update entry", err)
	}

	shown := c.openEcho(ctx, updated)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Token() == token {
		if i := indexOf(c.entries, id); i >= 0 {
			c.entries[i] = shown
		}
	}

	return shown, nil
}

// GetEntry returns the cached record for id, or the server's copy as
// received when it is not cached. The server copy of a private entry still
// carries its envelope.
func (c *entryCache) GetEntry(ctx context.Context, id int64) (models.Entry, error) {
	c.mu.Lock()
	if i := indexOf(c.entries, id); i >= 0 {
		e := c.entries[i]
		c.mu.Unlock()
		return e, nil
	}
	c.mu.Unlock()

	token, err := c.token()
	if err != nil {
		return models.Entry{}, err
	}

	e, err := c.client.GetEntry(ctx, token, id)
	if err != nil {
		return models.Entry{}, c.remoteErr(ctx, "get entry", err)
	}
	return e, nil
}

// Entries returns a copy of entries.
func (c *entryCache) Entries() []models.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.entries)
}

// PublicEntries returns a copy of publicEntries.
func (c *entryCache) PublicEntries() []models.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.publicEntries)
}

// ClearEntries drops the user's entries. The public feed is kept.
func (c *entryCache) ClearEntries() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

func indexOf(entries []models.Entry, id int64) int {
	return slices.IndexFunc(entries, func(e models.Entry) bool { return e.ID == id })
}

package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/remood/internal/client/client"
	"github.com/dmitrijs2005/remood/internal/client/models"
	"github.com/dmitrijs2005/remood/internal/common"
)

type fakeClient struct {
	client.Client

	mu sync.Mutex

	list    []models.Entry
	listErr error
	onList  func()

	public     []models.Entry
	userPublic map[string][]models.Entry

	stored   map[int64]models.Entry
	nextID   int64
	received []models.EntryInput
	writeErr error
	getErr   error

	calls int
}

func newFakeClient() *fakeClient {
	return &fakeClient{stored: map[int64]models.Entry{}, userPublic: map[string][]models.Entry{}}
}

func (f *fakeClient) Authenticate(ctx context.Context, username, password string) (string, error) {
	f.hit()
	if password != "pw" {
		return "", common.ErrAuthentication
	}
	return "tok-" + username, nil
}

func (f *fakeClient) Register(ctx context.Context, username, password string) error {
	f.hit()
	return nil
}

func (f *fakeClient) hit() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeClient) ListEntries(ctx context.Context, token string) ([]models.Entry, error) {
	f.hit()
	if f.onList != nil {
		f.onList()
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Entry(nil), f.list...), nil
}

func (f *fakeClient) ListPublicEntries(ctx context.Context) ([]models.Entry, error) {
	f.hit()
	return f.public, nil
}

func (f *fakeClient) ListUserPublicEntries(ctx context.Context, username string) ([]models.Entry, error) {
	f.hit()
	list, ok := f.userPublic[username]
	if !ok {
		return nil, &client.APIError{StatusCode: 404, Message: "user not found", Err: common.ErrNotFound}
	}
	return list, nil
}

func (f *fakeClient) echo(id int64, in models.EntryInput) models.Entry {
	return models.Entry{
		ID: id, MoodScore: in.MoodScore, Content: in.Content, Category: in.Category,
		IsEncrypted: in.IsEncrypted, IsBreakdown: in.IsBreakdown, Username: "demo",
	}
}

func (f *fakeClient) CreateEntry(ctx context.Context, token string, in models.EntryInput) (models.Entry, error) {
	f.hit()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, in)
	if f.writeErr != nil {
		return models.Entry{}, f.writeErr
	}
	f.nextID++
	e := f.echo(f.nextID, in)
	f.stored[e.ID] = e
	return e, nil
}

func (f *fakeClient) UpdateEntry(ctx context.Context, token string, id int64, in models.EntryInput) (models.Entry, error) {
	f.hit()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, in)
	if f.writeErr != nil {
		return models.Entry{}, f.writeErr
	}
	e := f.echo(id, in)
	f.stored[id] = e
	return e, nil
}

func (f *fakeClient) GetEntry(ctx context.Context, token string, id int64) (models.Entry, error) {
	f.hit()
	if f.getErr != nil {
		return models.Entry{}, f.getErr
	}
	e, ok := f.stored[id]
	if !ok {
		return models.Entry{}, &client.APIError{StatusCode: 404, Err: common.ErrNotFound}
	}
	return e, nil
}

type fakeSession struct {
	mu           sync.Mutex
	token        string
	username     string
	key          string
	keyErr       error
	unauthorized int
}

func (f *fakeSession) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeSession) Username() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.username
}

func (f *fakeSession) Key(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.key, f.keyErr
}

func (f *fakeSession) HandleUnauthorized(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unauthorized++
	f.token = ""
	f.username = ""
	f.key = ""
}

func (f *fakeSession) endSession() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
}

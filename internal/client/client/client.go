package client

import (
	"context"

	"github.com/dmitrijs2005/remood/internal/client/models"
)

// Client is the contract of the remote ReMood API.
//
// Calls that need authentication take the bearer token explicitly; the
// client itself holds no session state.
type Client interface {
	Close() error
	Authenticate(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) error
	ListEntries(ctx context.Context, token string) ([]models.Entry, error)
	ListPublicEntries(ctx context.Context) ([]models.Entry, error)
	ListUserPublicEntries(ctx context.Context, username string) ([]models.Entry, error)
	CreateEntry(ctx context.Context, token string, in models.EntryInput) (models.Entry, error)
	GetEntry(ctx context.Context, token string, id int64) (models.Entry, error)
	UpdateEntry(ctx context.Context, token string, id int64, in models.EntryInput) (models.Entry, error)
}

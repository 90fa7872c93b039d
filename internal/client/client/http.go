package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/remood/internal/client/models"
	"github.com/dmitrijs2005/remood/internal/common"
	"github.com/dmitrijs2005/remood/internal/logging"
	"github.com/dmitrijs2005/remood/internal/netx"
	"github.com/google/uuid"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"

	registrationFailed = "registration failed"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient returns a client for the API rooted at baseURL. A zero
// timeout leaves requests bounded only by their context.
func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	if log == nil {
		log = logging.Discard()
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
}

func formBody(username, password string) io.Reader {
	v := url.Values{}
	v.Set("username", username)
	v.Set("password", password)
	return strings.NewReader(v.Encode())
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(b), nil
}

// do sends r and returns the response when its status is 2xx. The caller
// closes the body.
func (c *HTTPClient) do(ctx context.Context, r request) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	req.Header.Set("Accept", contentTypeJSON)
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if r.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+r.token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", r.method, "path", r.path, "request_id", reqID, "error", err)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request done",
		"method", r.method, "path", r.path, "request_id", reqID,
		"status", resp.StatusCode, "elapsed", time.Since(started))

	if netx.IsSuccess(resp.StatusCode) {
		return resp, nil
	}

	defer resp.Body.Close()
	return nil, mapStatus(resp)
}

func mapStatus(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: netx.ErrorDetail(resp)}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		apiErr.Err = ErrUnauthorized
	case http.StatusNotFound:
		apiErr.Err = common.ErrNotFound
	default:
		apiErr.Err = common.ErrRequest
	}
	return apiErr
}

func (c *HTTPClient) doJSON(ctx context.Context, r request, out any) error {
	resp, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return netx.DecodeJSON(resp, out)
}

// Authenticate exchanges credentials for an access token.
func (c *HTTPClient) Authenticate(ctx context.Context, username, password string) (string, error) {
	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}

	err := c.doJSON(ctx, request{
		method:      http.MethodPost,
		path:        "/token",
		body:        formBody(username, password),
		contentType: contentTypeForm,
	}, &out)
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrAuthentication, err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", common.ErrAuthentication)
	}

	return out.AccessToken, nil
}

// Register creates an account. A rejected registration carries the server's
// message, or a generic one when none was sent.
func (c *HTTPClient) Register(ctx context.Context, username, password string) error {
	err := c.doJSON(ctx, request{
		method:      http.MethodPost,
		path:        "/register",
		body:        formBody(username, password),
		contentType: contentTypeForm,
	}, nil)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message == "" {
		apiErr.Message = registrationFailed
	}
	return err
}

func (c *HTTPClient) listEntries(ctx context.Context, path, token string) ([]models.Entry, error) {
	var out []models.Entry
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: path, token: token}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Entry{}
	}
	return out, nil
}

func (c *HTTPClient) ListEntries(ctx context.Context, token string) ([]models.Entry, error) {
	return c.listEntries(ctx, "/api/entries", token)
}

func (c *HTTPClient) ListPublicEntries(ctx context.Context) ([]models.Entry, error) {
	return c.listEntries(ctx, "/api/public-entries", "")
}

// ListUserPublicEntries returns the public entries of one user. An unknown
// user yields an error matching common.ErrNotFound.
func (c *HTTPClient) ListUserPublicEntries(ctx context.Context, username string) ([]models.Entry, error) {
	entries, err := c.listEntries(ctx, "/api/users/"+url.PathEscape(username)+"/public-entries", "")

	var apiErr *APIError
	if errors.As(err, &apiErr) && errors.Is(err, common.ErrNotFound) {
		apiErr.Message = "user not found"
	}
	return entries, err
}

func (c *HTTPClient) sendEntry(ctx context.Context, method, path, token string, in models.EntryInput) (models.Entry, error) {
	body, err := jsonBody(in)
	if err != nil {
		return models.Entry{}, err
	}

	var out models.Entry
	err = c.doJSON(ctx, request{
		method:      method,
		path:        path,
		token:       token,
		body:        body,
		contentType: contentTypeJSON,
	}, &out)
	return out, err
}

func (c *HTTPClient) CreateEntry(ctx context.Context, token string, in models.EntryInput) (models.Entry, error) {
	return c.sendEntry(ctx, http.MethodPost, "/api/entries", token, in)
}

func (c *HTTPClient) UpdateEntry(ctx context.Context, token string, id int64, in models.EntryInput) (models.Entry, error) {
	return c.sendEntry(ctx, http.MethodPut, entryPath(id), token, in)
}

func (c *HTTPClient) GetEntry(ctx context.Context, token string, id int64) (models.Entry, error) {
	var out models.Entry
	err := c.doJSON(ctx, request{method: http.MethodGet, path: entryPath(id), token: token}, &out)
	return out, err
}

func entryPath(id int64) string {
	return "/api/entries/" + strconv.FormatInt(id, 10)
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Package docstore is a thin typed client for the hosted document database
// and blob storage backend. It covers exactly the surface the back office
// uses: listing documents with equality queries, document CRUD, file
// upload/delete with preview URLs, and email-password sessions.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ninja-software/terror/v2"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound when the backend has no matching document or file
	ErrNotFound = fmt.Errorf("not found")
	// ErrUnauthorized when a session or key is missing or no longer valid
	ErrUnauthorized = fmt.Errorf("unauthorized")
)

type Client struct {
	Endpoint   string
	ProjectID  string
	APIKey     string
	DatabaseID string
	BucketID   string
	HTTP       *http.Client
	Log        *zerolog.Logger
}

func New(endpoint, projectID, apiKey, databaseID, bucketID string, log *zerolog.Logger) *Client {
	return &Client{
		Endpoint:   endpoint,
		ProjectID:  projectID,
		APIKey:     apiKey,
		DatabaseID: databaseID,
		BucketID:   bucketID,
		HTTP:       &http.Client{Timeout: 30 * time.Second},
		Log:        log,
	}
}

// backendError is the error envelope the backend responds with.
type backendError struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	session     string
	useKey      bool
}

func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	u := c.Endpoint + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, req.body)
	if err != nil {
		return terror.Error(err, "build backend request")
	}
	httpReq.Header.Set("X-Appwrite-Project", c.ProjectID)
	if req.useKey {
		httpReq.Header.Set("X-Appwrite-Key", c.APIKey)
	}
	if req.session != "" {
		httpReq.Header.Set("X-Appwrite-Session", req.session)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return terror.Error(err, "backend unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		bErr := &backendError{}
		_ = json.NewDecoder(resp.Body).Decode(bErr)
		c.Log.Warn().
			Int("status", resp.StatusCode).
			Str("path", req.path).
			Str("backend_message", bErr.Message).
			Msg("backend request failed")
		switch resp.StatusCode {
		case http.StatusNotFound:
			return terror.Error(ErrNotFound, bErr.Message)
		case http.StatusUnauthorized:
			return terror.Error(ErrUnauthorized, bErr.Message)
		}
		return terror.Error(fmt.Errorf("backend returned %d: %s", resp.StatusCode, bErr.Message))
	}

	if out == nil {
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(out)
	if err != nil {
		return terror.Error(err, "decode backend response")
	}
	return nil
}

// Health checks backend reachability, used at startup before serving.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, request{method: http.MethodGet, path: "/health", useKey: true}, nil)
}

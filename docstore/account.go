package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ninja-software/terror/v2"
)

// Session is a backend login session. Secret is the opaque token held in
// the admin panel's session cookie.
type Session struct {
	ID     string    `json:"$id"`
	UserID string    `json:"userId"`
	Secret string    `json:"secret"`
	Expire time.Time `json:"expire"`
}

// Account is the backend's view of the logged-in user.
type Account struct {
	ID     string   `json:"$id"`
	Email  string   `json:"email"`
	Name   string   `json:"name"`
	Labels []string `json:"labels"`
	Prefs  struct {
		Role         string `json:"role"`
		MobileNumber string `json:"mobile_number"`
	} `json:"prefs"`
}

// CreateEmailSession exchanges credentials for a session token.
func (c *Client) CreateEmailSession(ctx context.Context, email string, password string) (*Session, error) {
	payload, err := json.Marshal(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password})
	if err != nil {
		return nil, terror.Error(err, "encode login")
	}
	session := &Session{}
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/account/sessions/email",
		body:        bytes.NewReader(payload),
		contentType: "application/json",
		useKey:      true,
	}, session)
	if err != nil {
		return nil, terror.Error(err, "create session")
	}
	return session, nil
}

// GetAccount resolves a session token to its account. ErrUnauthorized when
// the token is absent, expired or revoked.
func (c *Client) GetAccount(ctx context.Context, session string) (*Account, error) {
	account := &Account{}
	err := c.do(ctx, request{
		method:  http.MethodGet,
		path:    "/account",
		session: session,
	}, account)
	if err != nil {
		return nil, terror.Error(err, "get account")
	}
	return account, nil
}

// DeleteSession revokes the current session on the backend.
func (c *Client) DeleteSession(ctx context.Context, session string) error {
	err := c.do(ctx, request{
		method:  http.MethodDelete,
		path:    "/account/sessions/current",
		session: session,
	}, nil)
	if err != nil {
		return terror.Error(err, "delete session")
	}
	return nil
}

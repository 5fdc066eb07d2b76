package apiclient

import (
	"context"

	"github.com/pkg/errors"
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// Validation errors returned before any request is sent.
var (
	ErrMissingFields    = errors.New("Please fill in all fields")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("Passwords do not match")
	ErrNotAuthenticated = errors.New("not logged in")
)

type tokenResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type verifyResponse struct {
	Valid bool  `json:"valid"`
	User  *User `json:"user"`
}

// Login authenticates with the server and stores the returned token in the
// session.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		return nil, errors.WithStack(ErrMissingFields)
	}

	resp := tokenResponse{}
	err := c.postCredentials(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	err = c.session.SetAuth(resp.Token, resp.User)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Register creates a new account and stores the returned token in the
// session. Username is optional. The password checks mirror the signup form:
// both password fields must be filled, match, and meet the minimum length.
func (c *Client) Register(ctx context.Context, email, username, password, confirmPassword string) (*User, error) {
	if email == "" || password == "" || confirmPassword == "" {
		return nil, errors.WithStack(ErrMissingFields)
	}
	if len(password) < MinPasswordLength {
		return nil, errors.WithStack(ErrPasswordTooShort)
	}
	if password != confirmPassword {
		return nil, errors.WithStack(ErrPasswordMismatch)
	}

	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	if username != "" {
		payload["username"] = username
	}

	resp := tokenResponse{}
	err := c.postCredentials(ctx, "/api/auth/register", payload, &resp)
	if err != nil {
		return nil, err
	}

	err = c.session.SetAuth(resp.Token, resp.User)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Verify checks the stored token against the server and refreshes the cached
// user. It returns ErrNotAuthenticated without a network call when the
// session has no token.
func (c *Client) Verify(ctx context.Context) (*User, error) {
	if c.session.BearerToken() == "" {
		return nil, errors.WithStack(ErrNotAuthenticated)
	}

	resp := verifyResponse{}
	err := c.get(ctx, "/api/auth/verify", &resp)
	if err != nil {
		return nil, err
	}

	err = c.session.SetAuth(c.session.BearerToken(), resp.User)
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Logout clears the local session. There is no server-side state to revoke.
func (c *Client) Logout() error {
	return c.session.Clear()
}

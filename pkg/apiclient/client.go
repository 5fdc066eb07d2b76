package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrUnauthorized is returned when the server rejects the session's token.
// By the time the caller sees it, the session has already been cleared and
// the OnUnauthorized hook (if any) has run.
var ErrUnauthorized = errors.New("unauthorized")

// APIError is a structured error response from the server.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is an HTTP client for the verseflow API. All authenticated requests
// send the session's token as an Authorization bearer header.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session

	// OnUnauthorized is called whenever the server returns 401 for an
	// authenticated request, after the session has been cleared. A UI client
	// would redirect to its login screen here.
	OnUnauthorized func()

	// ExtraHeaders is merged into every request after the defaults, so a
	// caller can add or override headers (including Authorization).
	ExtraHeaders http.Header
}

// New creates a client for the API at baseURL using the given session.
func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
}

// Session returns the session the client was created with.
func (c *Client) Session() *Session {
	return c.session
}

// do sends a request and decodes the JSON response into out (when out is
// non-nil). Request bodies are JSON-encoded. Error responses are surfaced as
// *APIError with the server's message. When interceptUnauthorized is set, a
// 401 means the stored token is no longer good: the session is cleared and
// the OnUnauthorized hook runs. Credential endpoints pass false so a login
// failure surfaces the server's message instead.
func (c *Client) do(ctx context.Context, method, path string, body, out any, interceptUnauthorized bool) error {
	var reqBody io.Reader
	if body != nil {
		contents, err := json.Marshal(body)
		if err != nil {
			return errors.WithStack(err)
		}
		reqBody = bytes.NewReader(contents)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.WithStack(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.BearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, values := range c.ExtraHeaders {
		req.Header.Del(key)
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && interceptUnauthorized {
		clearErr := c.session.Clear()
		if c.OnUnauthorized != nil {
			c.OnUnauthorized()
		}
		if clearErr != nil {
			return errors.WithStack(clearErr)
		}
		return errors.WithStack(ErrUnauthorized)
	}

	if resp.StatusCode >= 400 {
		return parseError(resp)
	}

	if out == nil {
		return nil
	}
	err = json.NewDecoder(resp.Body).Decode(out)
	return errors.Wrap(err, "parsing response")
}

func parseError(resp *http.Response) error {
	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WithStack(err)
	}

	wrapper := struct {
		Error *APIError `json:"error"`
	}{}
	err = json.Unmarshal(contents, &wrapper)
	if err != nil || wrapper.Error == nil || wrapper.Error.Message == "" {
		return errors.Errorf("unexpected response: %s (%s)", resp.Status, bytes.TrimSpace(contents))
	}
	if wrapper.Error.StatusCode == 0 {
		wrapper.Error.StatusCode = resp.StatusCode
	}
	return errors.WithStack(wrapper.Error)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

// postCredentials is post without the 401 interception. A 401 from a login or
// register attempt is a rejected credential, not an expired session, so it is
// returned as a plain *APIError and the session is left alone.
func (c *Client) postCredentials(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, false)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, true)
}

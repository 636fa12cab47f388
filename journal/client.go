// Package journal is the typed client SDK for the Trip Journal REST API.
// It covers authentication, trips, events, and media: request construction,
// bearer token handling, response classification into a typed error
// taxonomy, local/UTC date normalization at the wire boundary, and a
// current-value session broadcaster for the authenticated state.
//
// Every operation is an independent unit of work: one network round trip,
// no retry, no queueing. Callers may run operations concurrently; the only
// shared state is the credential slot and the session broadcaster, both of
// which synchronize internally.
package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Client is the Trip Journal API client. Construct it with New; the zero
// value is not usable. All collaborators (credential store, feedback sink,
// HTTP client) are injected so tests can substitute fakes.
type Client struct {
	baseURL     *url.URL
	httpc       *http.Client
	store       CredentialStore
	feedback    Feedback
	session     *Session
	loc         *time.Location
	logger      *slog.Logger
	logoutOn401 bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying *http.Client. The default is
// http.DefaultClient; the client never overrides its timeout.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithCredentialStore substitutes the credential storage backend.
// The default is an in-process MemoryStore.
func WithCredentialStore(s CredentialStore) Option {
	return func(c *Client) { c.store = s }
}

// WithFeedback substitutes the feedback sink. The default is NopFeedback.
func WithFeedback(f Feedback) Option {
	return func(c *Client) { c.feedback = f }
}

// WithTimeZone sets the zone used for local/UTC date normalization.
// The default is time.Local, matching the device-zone behavior of the app.
func WithTimeZone(loc *time.Location) Option {
	return func(c *Client) { c.loc = loc }
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithLogoutOn401 makes a 401 on any authenticated call clear the stored
// credential and flip the session to unauthenticated, instead of only
// surfacing ErrAuthentication. Off by default.
func WithLogoutOn401(enabled bool) Option {
	return func(c *Client) { c.logoutOn401 = enabled }
}

// New constructs a Client for the API at baseURL.
// If the configured credential store already holds a credential (a previous
// login on this machine), the session starts authenticated.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("journal.New: %w: %q", ErrInvalidURL, baseURL)
	}

	c := &Client{
		baseURL:  u,
		httpc:    http.DefaultClient,
		store:    NewMemoryStore(),
		feedback: NopFeedback{},
		loc:      time.Local,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	authenticated := false
	if cred, err := c.store.Load(); err == nil && cred.Valid() {
		authenticated = true
	}
	c.session = newSession(authenticated)

	return c, nil
}

// Session returns the session-state broadcaster.
func (c *Client) Session() *Session {
	return c.session
}

// do runs one operation end to end: resolve the endpoint, build and execute
// the request, classify the response, and decode into out (out == nil means
// the operation expects no payload, i.e. a delete).
func (c *Client) do(ctx context.Context, op operation, id int, payload, out any) error {
	ep := resolve(op, id)

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("journal: encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, ep.method, c.baseURL.JoinPath(ep.path).String(), body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if ep.auth {
		// A missing credential does not fail fast: the request goes out
		// without the header and the server answers 401.
		if cred, err := c.store.Load(); err == nil && cred.Valid() {
			req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
		}
	}

	err = c.send(req, out)
	if ep.auth && c.logoutOn401 && errors.Is(err, ErrAuthentication) {
		c.clearCredential()
	}
	return err
}

// send executes the request, classifies the outcome, and fires the feedback
// cue. A transport-level failure (no HTTP response at all) propagates
// unchanged; it is not reclassified into the error taxonomy.
func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.finish(req, 0, err)
		return err
	}
	defer resp.Body.Close()

	err = classify(resp, out)
	c.finish(req, resp.StatusCode, err)
	return err
}

// classify maps the HTTP response to a typed outcome:
//
//	204             → success iff no payload expected, else ErrInvalidResponse
//	200–299         → decode into out (failure → ErrDecoding)
//	401             → ErrAuthentication
//	400–499         → ErrBadRequest
//	500–599         → ErrServer
//	anything else   → ErrInvalidResponse
func classify(resp *http.Response, out any) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusNoContent:
		if out != nil {
			return fmt.Errorf("%w: unexpected 204", ErrInvalidResponse)
		}
		return nil
	case code >= 200 && code <= 299:
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: %v", ErrDecoding, err)
		}
		return nil
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: status 401", ErrAuthentication)
	case code >= 400 && code <= 499:
		return fmt.Errorf("%w: status %d", ErrBadRequest, code)
	case code >= 500 && code <= 599:
		return fmt.Errorf("%w: status %d", ErrServer, code)
	default:
		return fmt.Errorf("%w: status %d", ErrInvalidResponse, code)
	}
}

// finish logs the outcome and fires the feedback cue on its own goroutine,
// so a slow sink can never delay the caller.
func (c *Client) finish(req *http.Request, status int, err error) {
	if err != nil {
		c.logger.Debug("call failed",
			"method", req.Method, "path", req.URL.Path, "status", status, "error", err)
		go c.feedback.Failure()
		return
	}
	c.logger.Debug("call succeeded",
		"method", req.Method, "path", req.URL.Path, "status", status)
	go c.feedback.Success()
}

// clearCredential deletes the stored credential and publishes the
// unauthenticated state. Storage deletion failure is swallowed: the session
// flips regardless so the UI never stays stuck on the authenticated branch.
func (c *Client) clearCredential() {
	if err := c.store.Delete(); err != nil {
		c.logger.Debug("credential delete failed", "error", err)
	}
	c.session.set(false)
}

package journal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tripjournal/tripjournal-go/domain"
)

// Register creates a new account and logs it in: the returned credential is
// written to the credential store and the session flips to authenticated.
func (c *Client) Register(ctx context.Context, username, password string) (domain.Credential, error) {
	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var cred domain.Credential
	if err := c.do(ctx, opRegister, 0, payload, &cred); err != nil {
		return domain.Credential{}, err
	}
	return c.storeCredential(cred)
}

// Login exchanges a username and password for a credential. Unlike every
// other operation the body is form-encoded, not JSON, with an empty
// grant_type field, the shape the token endpoint expects.
//
// A 401 or non-401 4xx from this call is remapped to ErrInvalidCredentials
// so the UI can say "invalid username or password" without inspecting
// status codes. All other failures keep their generic classification.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Credential, error) {
	ep := resolve(opLogin, 0)

	form := url.Values{
		"grant_type": {""},
		"username":   {username},
		"password":   {password},
	}

	req, err := http.NewRequestWithContext(ctx, ep.method,
		c.baseURL.JoinPath(ep.path).String(), strings.NewReader(form.Encode()))
	if err != nil {
		return domain.Credential{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var cred domain.Credential
	if err := c.send(req, &cred); err != nil {
		if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrAuthentication) {
			return domain.Credential{}, ErrInvalidCredentials
		}
		return domain.Credential{}, err
	}
	return c.storeCredential(cred)
}

// Logout deletes the stored credential and publishes the unauthenticated
// state. It never fails: a storage deletion error is swallowed so the UI
// always lands on the login branch.
func (c *Client) Logout() {
	c.clearCredential()
}

// storeCredential validates the decoded credential, persists it, and flips
// the session to authenticated. The session only flips once the credential
// is safely stored.
func (c *Client) storeCredential(cred domain.Credential) (domain.Credential, error) {
	if !cred.Valid() || cred.TokenType == "" {
		return domain.Credential{}, fmt.Errorf("%w: credential missing required fields", ErrDecoding)
	}
	if err := c.store.Save(cred); err != nil {
		return domain.Credential{}, err
	}
	c.session.set(true)
	return cred, nil
}

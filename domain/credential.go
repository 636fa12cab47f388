package domain

// Credential is the bearer token returned by the authentication endpoints
// and attached to every authenticated request. While a session is active the
// access token is non-empty.
type Credential struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Valid reports whether the credential carries a usable token.
func (c Credential) Valid() bool {
	return c.AccessToken != ""
}

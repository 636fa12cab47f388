package handler

import (
	"encoding/json"
	"net/http"
)

// registerRequest is the JSON body for POST /register.
type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

// credentialResponse is the token payload returned by /register and /token.
type credentialResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register handles POST /register. A successful registration returns 201
// with a bearer token, signing the new user in immediately.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, r, "request body must be valid JSON")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		requestError(w, r, "username (min 3) and password (min 8) are required")
		return
	}

	token, err := s.auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		serviceError(w, r, err, "username")
		return
	}

	writeJSON(w, r, http.StatusCreated, credentialResponse{AccessToken: token, TokenType: "bearer"})
}

// Token handles POST /token, the OAuth2-password-style login endpoint.
// The body is form-encoded (grant_type, username, password); bad
// credentials come back as 401.
func (s *Server) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		requestError(w, r, "request body must be form-encoded")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		requestError(w, r, "username and password are required")
		return
	}

	token, err := s.auth.Login(r.Context(), username, password)
	if err != nil {
		serviceError(w, r, err, "user")
		return
	}

	writeJSON(w, r, http.StatusOK, credentialResponse{AccessToken: token, TokenType: "bearer"})
}

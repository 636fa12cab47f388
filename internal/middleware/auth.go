package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey is a private type so context values set here cannot collide
// with keys from other packages.
type contextKey struct{}

var userIDKey contextKey

// NewAuthHandler returns a middleware that requires a valid bearer token on
// every request it wraps. Tokens are HS256 JWTs signed with secret; the
// subject claim carries the numeric user ID, which is placed in the request
// context for handlers to read via UserID.
//
// Requests without a token, with a malformed or expired token, or with a
// token signed by another key are rejected with 401 and a JSON error body.
func NewAuthHandler(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") {
				unauthorized(w, "authorization header must be 'Bearer <token>'")
				return
			}

			userID, err := parseSubject(token, secret)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}

// UserID returns the authenticated user's ID from the request context.
// The second return is false when the request did not pass through the
// auth middleware.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

// parseSubject validates the token signature and expiry and extracts the
// numeric user ID from the subject claim.
func parseSubject(token, secret string) (int, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, fmt.Errorf("middleware.parseSubject: %w", err)
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("middleware.parseSubject: %w", err)
	}
	id, err := strconv.Atoi(sub)
	if err != nil {
		return 0, fmt.Errorf("middleware.parseSubject: subject %q is not a user id", sub)
	}
	return id, nil
}

// unauthorized writes a 401 with the same JSON error shape the handlers use.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprintf(w, `{"error":{"code":"unauthorized","message":%q}}`, message)
}

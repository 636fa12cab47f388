package journal_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripjournal/tripjournal-go/domain"
	"github.com/tripjournal/tripjournal-go/journal"
)

// ---- helpers ---------------------------------------------------------------

// newClient spins up an httptest server around h and returns a client
// pointed at it. The server is torn down with the test.
func newClient(t *testing.T, h http.HandlerFunc, opts ...journal.Option) *journal.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := journal.New(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

// authedStore returns a credential store pre-loaded with a token, standing
// in for a device that already logged in.
func authedStore(t *testing.T) journal.CredentialStore {
	t.Helper()
	store := journal.NewMemoryStore()
	require.NoError(t, store.Save(domain.Credential{AccessToken: "tok-123", TokenType: "bearer"}))
	return store
}

// recordingFeedback counts cues. The client fires them on a goroutine, so
// assertions go through assert.Eventually.
type recordingFeedback struct {
	mu        sync.Mutex
	successes int
	failures  int
}

func (f *recordingFeedback) Success() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes++
}

func (f *recordingFeedback) Failure() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures++
}

func (f *recordingFeedback) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.successes, f.failures
}

func status(code int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
		if body != "" {
			w.Write([]byte(body))
		}
	}
}

// ---- construction ----------------------------------------------------------

func TestNew_RejectsMalformedBaseURL(t *testing.T) {
	_, err := journal.New("not a url")
	assert.ErrorIs(t, err, journal.ErrInvalidURL)

	_, err = journal.New("/just/a/path")
	assert.ErrorIs(t, err, journal.ErrInvalidURL)
}

// TestNew_StoredCredentialStartsAuthenticated: a credential left by a
// previous login flips the session to authenticated at startup.
func TestNew_StoredCredentialStartsAuthenticated(t *testing.T) {
	c, err := journal.New("http://localhost:1", journal.WithCredentialStore(authedStore(t)))
	require.NoError(t, err)

	assert.True(t, c.Session().Authenticated())
}

func TestNew_EmptyStoreStartsUnauthenticated(t *testing.T) {
	c, err := journal.New("http://localhost:1")
	require.NoError(t, err)

	assert.False(t, c.Session().Authenticated())
}

// ---- request construction --------------------------------------------------

// TestRequestHeaders: JSON content negotiation plus the bearer token on an
// authenticated operation.
func TestRequestHeaders(t *testing.T) {
	var got *http.Request
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Write([]byte(`[]`))
	}, journal.WithCredentialStore(authedStore(t)))

	_, err := c.Trips(context.Background())

	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/trips", got.URL.Path)
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))
}

// TestRequest_NoCredential_ProceedsWithoutHeader: a missing credential does
// not fail fast client-side; the request goes out bare and the server's 401
// comes back as ErrAuthentication.
func TestRequest_NoCredential_ProceedsWithoutHeader(t *testing.T) {
	var auth string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Trips(context.Background())

	assert.Empty(t, auth)
	assert.ErrorIs(t, err, journal.ErrAuthentication)
}

// ---- response classification -----------------------------------------------

func TestClassification(t *testing.T) {
	cases := []struct {
		name string
		code int
		body string
		want error
	}{
		{"401 is authentication error", http.StatusUnauthorized, "", journal.ErrAuthentication},
		{"403 is bad request", http.StatusForbidden, "", journal.ErrBadRequest},
		{"404 is bad request", http.StatusNotFound, "", journal.ErrBadRequest},
		{"422 is bad request", http.StatusUnprocessableEntity, "", journal.ErrBadRequest},
		{"500 is server error", http.StatusInternalServerError, "", journal.ErrServer},
		{"503 is server error", http.StatusServiceUnavailable, "", journal.ErrServer},
		{"304 is invalid response", http.StatusNotModified, "", journal.ErrInvalidResponse},
		{"204 on a list is invalid response", http.StatusNoContent, "", journal.ErrInvalidResponse},
		{"2xx with broken body is decoding error", http.StatusOK, `{"nope`, journal.ErrDecoding},
		{"2xx with wrong shape is decoding error", http.StatusOK, `{"a":1}`, journal.ErrDecoding},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newClient(t, status(tc.code, tc.body), journal.WithCredentialStore(authedStore(t)))

			_, err := c.Trips(context.Background())

			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// TestDelete_204IsSuccess: a delete answered with 204 yields
// success with no payload and no decode attempt.
func TestDelete_204IsSuccess(t *testing.T) {
	c := newClient(t, status(http.StatusNoContent, ""), journal.WithCredentialStore(authedStore(t)))

	err := c.DeleteTrip(context.Background(), 7)

	assert.NoError(t, err)
}

// TestTransportError_PropagatesUnchanged: with no HTTP response at all the
// underlying transport error surfaces as-is, outside the taxonomy.
func TestTransportError_PropagatesUnchanged(t *testing.T) {
	srv := httptest.NewServer(status(http.StatusOK, "[]"))
	c, err := journal.New(srv.URL, journal.WithCredentialStore(authedStore(t)))
	require.NoError(t, err)
	srv.Close() // connection refused from here on

	_, err = c.Trips(context.Background())

	require.Error(t, err)
	assert.NotErrorIs(t, err, journal.ErrInvalidResponse)
	assert.NotErrorIs(t, err, journal.ErrServer)
	assert.NotErrorIs(t, err, journal.ErrBadRequest)
}

// ---- feedback side channel ---------------------------------------------------

func TestFeedback_SuccessAndFailureCues(t *testing.T) {
	fb := &recordingFeedback{}
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/trips" {
			w.Write([]byte(`[]`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}, journal.WithCredentialStore(authedStore(t)), journal.WithFeedback(fb))

	_, err := c.Trips(context.Background())
	require.NoError(t, err)
	require.Error(t, c.DeleteEvent(context.Background(), 1))

	assert.Eventually(t, func() bool {
		s, f := fb.counts()
		return s == 1 && f == 1
	}, time.Second, 10*time.Millisecond, "expected one success and one failure cue")
}

// ---- 401 handling ------------------------------------------------------------

// TestDefault_401KeepsSessionAuthenticated: by default a 401 on a non-login
// call surfaces ErrAuthentication but neither clears the credential nor
// flips the session (the app's observed behavior).
func TestDefault_401KeepsSessionAuthenticated(t *testing.T) {
	store := authedStore(t)
	c := newClient(t, status(http.StatusUnauthorized, ""), journal.WithCredentialStore(store))

	_, err := c.Trips(context.Background())

	assert.ErrorIs(t, err, journal.ErrAuthentication)
	assert.True(t, c.Session().Authenticated())
	_, loadErr := store.Load()
	assert.NoError(t, loadErr, "credential must survive the 401")
}

// TestWithLogoutOn401: opting in clears the credential and publishes the
// unauthenticated state when an authenticated call returns 401.
func TestWithLogoutOn401(t *testing.T) {
	store := authedStore(t)
	c := newClient(t, status(http.StatusUnauthorized, ""),
		journal.WithCredentialStore(store), journal.WithLogoutOn401(true))

	_, err := c.Trips(context.Background())

	assert.ErrorIs(t, err, journal.ErrAuthentication)
	assert.False(t, c.Session().Authenticated())
	_, loadErr := store.Load()
	assert.ErrorIs(t, loadErr, journal.ErrItemNotFound)
}

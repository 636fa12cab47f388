package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wire "github.com/tripjournal/tripjournal-go/domain"
	"github.com/tripjournal/tripjournal-go/internal/domain"
	"github.com/tripjournal/tripjournal-go/internal/handler"
)

// mockTripServicer is a test double for handler.TripServicer.
// Set only the method fields your test needs.
type mockTripServicer struct {
	create  func(ctx context.Context, userID int, trip domain.Trip) (domain.Trip, error)
	getByID func(ctx context.Context, userID, tripID int) (domain.Trip, error)
	list    func(ctx context.Context, userID int) ([]domain.Trip, error)
	update  func(ctx context.Context, userID int, trip domain.Trip) (domain.Trip, error)
	delete  func(ctx context.Context, userID, tripID int) error
}

func (m *mockTripServicer) Create(ctx context.Context, userID int, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, userID, t)
}
func (m *mockTripServicer) GetByID(ctx context.Context, userID, tripID int) (domain.Trip, error) {
	return m.getByID(ctx, userID, tripID)
}
func (m *mockTripServicer) List(ctx context.Context, userID int) ([]domain.Trip, error) {
	return m.list(ctx, userID)
}
func (m *mockTripServicer) Update(ctx context.Context, userID int, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, userID, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, userID, tripID int) error {
	return m.delete(ctx, userID, tripID)
}

// compile-time check: mockTripServicer must satisfy handler.TripServicer.
var _ handler.TripServicer = (*mockTripServicer)(nil)

// ---- helpers ---------------------------------------------------------------

const (
	testSecret = "handler-test-secret"
	testUserID = 7
)

// newRouter wires a Server with the given mocks into the real chi router,
// including the auth middleware. This mirrors exactly how main.go wires it
// in production. Pass nil for services a test does not touch.
func newRouter(auth handler.AuthServicer, trips handler.TripServicer, events handler.EventServicer, media handler.MediaServicer) http.Handler {
	srv := handler.NewServer(auth, trips, events, media)
	return srv.Routes(handler.RouterConfig{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		JWTSecret:      testSecret,
		MaxUploadBytes: 1 << 20,
	})
}

// authed stamps a valid bearer token for testUserID onto the request.
func authed(t *testing.T, req *http.Request) *http.Request {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(testUserID),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:        12,
		UserID:    testUserID,
		Name:      "Paris 2025",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		Events:    []domain.Event{},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

// ---- auth boundary ---------------------------------------------------------

func TestTrips_401_WithoutToken(t *testing.T) {
	router := newRouter(nil, &mockTripServicer{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/trips", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ---- POST /trips -----------------------------------------------------------

func TestCreateTrip_201(t *testing.T) {
	fixture := tripFixture()
	var gotUserID int
	svc := &mockTripServicer{
		create: func(_ context.Context, userID int, _ domain.Trip) (domain.Trip, error) {
			gotUserID = userID
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":       "Paris 2025",
		"start_date": "2025-06-01T00:00:00Z",
		"end_date":   "2025-06-15T00:00:00Z",
	})

	req := authed(t, httptest.NewRequest(http.MethodPost, "/trips", body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newRouter(nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, testUserID, gotUserID)

	var resp wire.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
	assert.Equal(t, fixture.Name, resp.Name)
	assert.Equal(t, "2025-06-01T00:00:00Z", resp.StartDate.UTC().Format(time.RFC3339))
}

func TestCreateTrip_422_MalformedBody(t *testing.T) {
	svc := &mockTripServicer{}

	req := authed(t, httptest.NewRequest(http.MethodPost, "/trips", bytes.NewBufferString("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newRouter(nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestCreateTrip_422_ValidationError(t *testing.T) {
	svc := &mockTripServicer{
		create: func(_ context.Context, _ int, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{
		"name":       "",
		"start_date": "2025-06-01T00:00:00Z",
		"end_date":   "2025-06-15T00:00:00Z",
	})

	req := authed(t, httptest.NewRequest(http.MethodPost, "/trips", body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newRouter(nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}

// ---- GET /trips ------------------------------------------------------------

func TestListTrips_200(t *testing.T) {
	svc := &mockTripServicer{
		list: func(_ context.Context, _ int) ([]domain.Trip, error) {
			return []domain.Trip{tripFixture(), tripFixture()}, nil
		},
	}

	req := authed(t, httptest.NewRequest(http.MethodGet, "/trips", nil))
	rec := httptest.NewRecorder()

	newRouter(nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []wire.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
}

func TestListTrips_200_Empty(t *testing.T) {
	svc := &mockTripServicer{
		list: func(_ context.Context, _ int) ([]domain.Trip, error) { return []domain.Trip{}, nil },
	}

	req := authed(t, httptest.NewRequest(http.MethodGet, "/trips", nil))
	rec := httptest.NewRecorder()

	newRouter(nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	// Must be a JSON array, not null.
	assert.JSONEq(t, "[]", rec.Body.String())
}

// ---- GET /trips/{id} -------------------------------------------------------

func TestGetTrip_200(t *testing.T) {
	fixture := tripFixture()
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _, tripID int) (domain.Trip, error) {
			require.Equal(t, fixture.ID, tripID)
			return fixture, nil
		},
	}

	req := authed(t, httptest.NewRequest(http.MethodGet, "/trips/12", nil))
	rec := httptest.NewRecorder()

	newRouter(nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp wire.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp.ID)
}

func TestGetTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		getByID: func(_ context.Context, _, _ int) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	req := authed(t, httptest.NewRequest(http.MethodGet, "/trips/99", nil))
	rec := httptest.NewRecorder()

	newRouter(nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTrip_404_NonNumericID(t *testing.T) {
	svc := &mockTripServicer{}

	req := authed(t, httptest.NewRequest(http.MethodGet, "/trips/abc", nil))
	rec := httptest.NewRecorder()

	newRouter(nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- PUT /trips/{id} -------------------------------------------------------

func TestUpdateTrip_200(t *testing.T) {
	fixture := tripFixture()
	fixture.Name = "Updated Name"
	var gotID int
	svc := &mockTripServicer{
		update: func(_ context.Context, _ int, trip domain.Trip) (domain.Trip, error) {
			gotID = trip.ID
			return fixture, nil
		},
	}

	body := jsonBody(t, map[string]any{
		"name":       "Updated Name",
		"start_date": "2025-06-01T00:00:00Z",
		"end_date":   "2025-06-15T00:00:00Z",
	})

	req := authed(t, httptest.NewRequest(http.MethodPut, "/trips/12", body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newRouter(nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 12, gotID)

	var resp wire.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Updated Name", resp.Name)
}

func TestUpdateTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		update: func(_ context.Context, _ int, _ domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}

	body := jsonBody(t, map[string]any{
		"name":       "X",
		"start_date": "2025-06-01T00:00:00Z",
		"end_date":   "2025-06-15T00:00:00Z",
	})

	req := authed(t, httptest.NewRequest(http.MethodPut, "/trips/99", body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newRouter(nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ---- DELETE /trips/{id} ----------------------------------------------------

func TestDeleteTrip_204(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, _, _ int) error { return nil },
	}

	req := authed(t, httptest.NewRequest(http.MethodDelete, "/trips/12", nil))
	rec := httptest.NewRecorder()

	newRouter(nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestDeleteTrip_404(t *testing.T) {
	svc := &mockTripServicer{
		delete: func(_ context.Context, _, _ int) error { return domain.ErrNotFound },
	}

	req := authed(t, httptest.NewRequest(http.MethodDelete, "/trips/99", nil))
	rec := httptest.NewRecorder()

	newRouter(nil, svc, nil, nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

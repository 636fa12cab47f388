// Package handler implements the HTTP layer of the Trip Journal API.
// Handlers parse and validate requests, call the service layer, and map
// domain results and errors onto the wire protocol. Methods are split into
// resource-specific files (auth.go, trip.go, etc.) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/tripjournal/tripjournal-go/internal/domain"
	"github.com/tripjournal/tripjournal-go/internal/middleware"
)

// AuthServicer defines the account operations the handlers depend on.
// Defining the interfaces here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type AuthServicer interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// TripServicer defines the trip operations the handlers depend on.
type TripServicer interface {
	Create(ctx context.Context, userID int, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID, tripID int) (domain.Trip, error)
	List(ctx context.Context, userID int) ([]domain.Trip, error)
	Update(ctx context.Context, userID int, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, userID, tripID int) error
}

// EventServicer defines the event operations the handlers depend on.
type EventServicer interface {
	Create(ctx context.Context, userID int, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, userID int, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, userID, eventID int) error
}

// MediaServicer defines the media operations the handlers depend on.
type MediaServicer interface {
	Upload(ctx context.Context, userID, eventID int, data []byte, caption *string) (domain.Media, error)
	Delete(ctx context.Context, userID, mediaID int) error
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	auth     AuthServicer
	trips    TripServicer
	events   EventServicer
	media    MediaServicer
	validate *validator.Validate
}

// NewServer constructs the Server with all its dependencies.
func NewServer(auth AuthServicer, trips TripServicer, events EventServicer, media MediaServicer) *Server {
	return &Server{
		auth:     auth,
		trips:    trips,
		events:   events,
		media:    media,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RouterConfig carries the cross-cutting settings Routes needs.
type RouterConfig struct {
	Logger         *slog.Logger
	JWTSecret      string
	CORSOrigins    []string
	MaxUploadBytes int64
}

// Routes assembles the full router: shared middleware, the public auth and
// health endpoints, and the bearer-token-protected resource routes.
func (s *Server) Routes(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP.
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))

	r.Get("/healthz", s.GetHealth)
	r.Post("/register", s.Register)
	r.Post("/token", s.Token)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthHandler(cfg.JWTSecret))

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Get("/{id}", s.GetTrip)
			r.Put("/{id}", s.UpdateTrip)
			r.Delete("/{id}", s.DeleteTrip)
		})

		r.Route("/events", func(r chi.Router) {
			r.Post("/", s.CreateEvent)
			r.Put("/{id}", s.UpdateEvent)
			r.Delete("/{id}", s.DeleteEvent)
		})

		r.Route("/media", func(r chi.Router) {
			// Base64 photo payloads are the only large bodies the API accepts.
			r.With(middleware.NewMaxBodySizeHandler(cfg.MaxUploadBytes)).Post("/", s.UploadMedia)
			r.Delete("/{id}", s.DeleteMedia)
		})
	})

	return r
}

// userID pulls the authenticated user from the request context. The auth
// middleware guarantees it is present on protected routes.
func userID(r *http.Request) int {
	id, _ := middleware.UserID(r.Context())
	return id
}

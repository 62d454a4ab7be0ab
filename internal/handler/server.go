// Package handler implements the HTTP handlers for the horse-calendar API.
// All handlers are methods on Server. Methods are split into resource files
// (cavalier.go, assignment.go, stats.go) but all share the same Server
// struct so they can access its dependencies.
//
// The wire format mirrors the original planning backend: mutations answer
// {"success":true, ...} with the full updated collection, failures answer
// {"error": "..."} with HTTP 400 for client faults and 500 otherwise.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adeline-t/horse-calendar/internal/domain"
	"github.com/adeline-t/horse-calendar/spec"
)

// RosterServicer defines the business operations the cavalier handlers
// depend on. Defining the interface here (in the consumer package) follows
// the Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without touching the database or service layer.
type RosterServicer interface {
	List(ctx context.Context) ([]domain.Cavalier, error)
	Create(ctx context.Context, c domain.Cavalier) ([]domain.Cavalier, error)
	UpdateAt(ctx context.Context, index int, patch domain.CavalierPatch) ([]domain.Cavalier, error)
	DeleteAt(ctx context.Context, index int) ([]domain.Cavalier, error)
	ActiveOn(ctx context.Context, date domain.DateKey) ([]domain.Cavalier, error)
}

// PlanningServicer defines the business operations the assignment and stats
// handlers depend on.
type PlanningServicer interface {
	Snapshot(ctx context.Context) (domain.Snapshot, error)
	Save(ctx context.Context, key domain.DateKey, rec domain.DayRecord) (domain.Snapshot, error)
	Stats(ctx context.Context, month, year string) (domain.StatsReport, error)
}

// Server implements the API endpoints. Methods live in resource-specific
// files but all operate on this struct.
type Server struct {
	roster   RosterServicer
	planning PlanningServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(roster RosterServicer, planning PlanningServicer) *Server {
	return &Server{roster: roster, planning: planning}
}

// Routes mounts every endpoint on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cavaliers", func(r chi.Router) {
			r.Get("/", s.ListCavaliers)
			r.Post("/", s.CreateCavalier)
			r.Get("/active", s.ListActiveCavaliers)
			r.Put("/{index}", s.UpdateCavalier)
			r.Delete("/{index}", s.DeleteCavalier)
		})
		r.Route("/assignments", func(r chi.Router) {
			r.Get("/", s.GetAssignments)
			r.Post("/", s.SaveAssignment)
		})
		r.Get("/stats", s.GetStats)
	})

	return r
}

// GetOpenAPI serves the embedded API description.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}

// writeJSON encodes v with the given status. Encoding failures are ignored:
// the status line is already on the wire by then.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adeline-t/horse-calendar/internal/domain"
)

// successRoster is the mutation envelope for roster endpoints: the flag
// plus the full updated roster, which clients adopt wholesale.
type successRoster struct {
	Success   bool              `json:"success"`
	Cavaliers []domain.Cavalier `json:"cavaliers"`
}

// createCavalierRequest is the body of POST /api/cavaliers.
// Color and the date bounds are optional; empty strings mean unset.
type createCavalierRequest struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// updateCavalierRequest is the body of PUT /api/cavaliers/{index}.
// Only fields present in the JSON are applied.
type updateCavalierRequest struct {
	Name      *string `json:"name"`
	Color     *string `json:"color"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// ListCavaliers handles GET /api/cavaliers.
func (s *Server) ListCavaliers(w http.ResponseWriter, r *http.Request) {
	roster, err := s.roster.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roster)
}

// ListActiveCavaliers handles GET /api/cavaliers/active?date=YYYY-MM-DD.
// Without a date it returns the whole roster.
func (s *Server) ListActiveCavaliers(w http.ResponseWriter, r *http.Request) {
	date := domain.DateKey(r.URL.Query().Get("date"))

	active, err := s.roster.ActiveOn(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, active)
}

// CreateCavalier handles POST /api/cavaliers.
func (s *Server) CreateCavalier(w http.ResponseWriter, r *http.Request) {
	var req createCavalierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	roster, err := s.roster.Create(r.Context(), domain.Cavalier{
		Name:      req.Name,
		Color:     req.Color,
		StartDate: domain.DateKey(req.StartDate),
		EndDate:   domain.DateKey(req.EndDate),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successRoster{Success: true, Cavaliers: roster})
}

// UpdateCavalier handles PUT /api/cavaliers/{index}.
func (s *Server) UpdateCavalier(w http.ResponseWriter, r *http.Request) {
	index, ok := rosterIndex(w, r)
	if !ok {
		return
	}

	var req updateCavalierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	patch := domain.CavalierPatch{Name: req.Name, Color: req.Color}
	if req.StartDate != nil {
		start := domain.DateKey(*req.StartDate)
		patch.StartDate = &start
	}
	if req.EndDate != nil {
		end := domain.DateKey(*req.EndDate)
		patch.EndDate = &end
	}

	roster, err := s.roster.UpdateAt(r.Context(), index, patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successRoster{Success: true, Cavaliers: roster})
}

// DeleteCavalier handles DELETE /api/cavaliers/{index}.
func (s *Server) DeleteCavalier(w http.ResponseWriter, r *http.Request) {
	index, ok := rosterIndex(w, r)
	if !ok {
		return
	}

	roster, err := s.roster.DeleteAt(r.Context(), index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successRoster{Success: true, Cavaliers: roster})
}

// rosterIndex parses the {index} path parameter. On failure it writes the
// 400 response itself and returns ok=false.
func rosterIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeBadRequest(w, "invalid index")
		return 0, false
	}
	return index, true
}

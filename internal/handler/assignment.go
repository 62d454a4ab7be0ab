package handler

import (
	"encoding/json"
	"net/http"

	"github.com/adeline-t/horse-calendar/internal/domain"
)

// saveAssignmentRequest is the body of POST /api/assignments. Every save
// carries the full triple for the date; there is no partial patch.
type saveAssignmentRequest struct {
	Date      string   `json:"date"`
	Cavaliers []string `json:"cavaliers"`
	Comment   string   `json:"comment"`
	WorkType  string   `json:"work_type"`
}

// successAssignments is the mutation envelope for assignment saves: the
// flag plus the authoritative snapshot of every date, which clients adopt
// verbatim instead of merging locally.
type successAssignments struct {
	Success     bool            `json:"success"`
	Assignments domain.Snapshot `json:"assignments"`
}

// GetAssignments handles GET /api/assignments.
func (s *Server) GetAssignments(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.planning.Snapshot(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// SaveAssignment handles POST /api/assignments.
func (s *Server) SaveAssignment(w http.ResponseWriter, r *http.Request) {
	var req saveAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	snapshot, err := s.planning.Save(r.Context(), domain.DateKey(req.Date), domain.DayRecord{
		Cavaliers: req.Cavaliers,
		Comment:   req.Comment,
		WorkType:  domain.WorkType(req.WorkType),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, successAssignments{Success: true, Assignments: snapshot})
}

package handler

import "net/http"

// GetStats handles GET /api/stats?month=MM&year=YYYY.
// The month filter applies only when both parameters are present.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	report, err := s.planning.Stats(r.Context(), q.Get("month"), q.Get("year"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

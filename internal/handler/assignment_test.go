package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adeline-t/horse-calendar/internal/domain"
	"github.com/adeline-t/horse-calendar/internal/handler"
)

// ---- mock PlanningServicer -------------------------------------------------

type mockPlanningServicer struct {
	snapshot func(ctx context.Context) (domain.Snapshot, error)
	save     func(ctx context.Context, key domain.DateKey, rec domain.DayRecord) (domain.Snapshot, error)
	stats    func(ctx context.Context, month, year string) (domain.StatsReport, error)
}

func (m *mockPlanningServicer) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	return m.snapshot(ctx)
}
func (m *mockPlanningServicer) Save(ctx context.Context, key domain.DateKey, rec domain.DayRecord) (domain.Snapshot, error) {
	return m.save(ctx, key, rec)
}
func (m *mockPlanningServicer) Stats(ctx context.Context, month, year string) (domain.StatsReport, error) {
	return m.stats(ctx, month, year)
}

// compile-time check: mockPlanningServicer must satisfy handler.PlanningServicer.
var _ handler.PlanningServicer = (*mockPlanningServicer)(nil)

func newPlanningHandler(planning handler.PlanningServicer) http.Handler {
	return handler.NewServer(nil, planning).Routes()
}

// ---- GET /api/assignments --------------------------------------------------

func TestGetAssignments_200(t *testing.T) {
	svc := &mockPlanningServicer{
		snapshot: func(context.Context) (domain.Snapshot, error) {
			return domain.Snapshot{
				"2024-03-15": {Cavaliers: []string{"Alice"}, Comment: "", WorkType: domain.WorkCSO},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/assignments", nil)
	rec := httptest.NewRecorder()
	newPlanningHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"2024-03-15":{"cavaliers":["Alice"],"comment":"","work_type":"cso"}}`,
		rec.Body.String())
}

func TestGetAssignments_200_EmptyMapNotNull(t *testing.T) {
	svc := &mockPlanningServicer{
		snapshot: func(context.Context) (domain.Snapshot, error) { return domain.Snapshot{}, nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/api/assignments", nil)
	rec := httptest.NewRecorder()
	newPlanningHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{}`, rec.Body.String())
}

// ---- POST /api/assignments -------------------------------------------------

func TestSaveAssignment_200(t *testing.T) {
	var gotKey domain.DateKey
	var gotRec domain.DayRecord
	svc := &mockPlanningServicer{
		save: func(_ context.Context, key domain.DateKey, rec domain.DayRecord) (domain.Snapshot, error) {
			gotKey, gotRec = key, rec
			return domain.Snapshot{key: rec}, nil
		},
	}

	body := `{"date":"2024-03-15","cavaliers":["Alice","Bob"],"comment":"ferrier","work_type":"plat"}`
	req := httptest.NewRequest(http.MethodPost, "/api/assignments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newPlanningHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.DateKey("2024-03-15"), gotKey)
	assert.Equal(t, []string{"Alice", "Bob"}, gotRec.Cavaliers)
	assert.Equal(t, "ferrier", gotRec.Comment)
	assert.Equal(t, domain.WorkPlat, gotRec.WorkType)

	var resp struct {
		Success     bool            `json:"success"`
		Assignments domain.Snapshot `json:"assignments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.Assignments, domain.DateKey("2024-03-15"))
}

func TestSaveAssignment_400_MissingDate(t *testing.T) {
	svc := &mockPlanningServicer{
		save: func(_ context.Context, key domain.DateKey, _ domain.DayRecord) (domain.Snapshot, error) {
			return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/assignments", strings.NewReader(`{"cavaliers":[]}`))
	rec := httptest.NewRecorder()
	newPlanningHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "date is required", resp["error"])
}

func TestSaveAssignment_400_BadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/assignments", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	newPlanningHandler(&mockPlanningServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- GET /api/stats --------------------------------------------------------

func TestGetStats_200_PassesFilter(t *testing.T) {
	var gotMonth, gotYear string
	svc := &mockPlanningServicer{
		stats: func(_ context.Context, month, year string) (domain.StatsReport, error) {
			gotMonth, gotYear = month, year
			return domain.StatsReport{
				CavalierCounts: map[string]int{"Alice": 2},
				WorkTypeCounts: map[domain.WorkType]int{domain.WorkCSO: 1},
				Cavaliers:      []domain.Cavalier{},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats?month=03&year=2024", nil)
	rec := httptest.NewRecorder()
	newPlanningHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "03", gotMonth)
	assert.Equal(t, "2024", gotYear)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "cavalier_stats")
	assert.Contains(t, resp, "work_types")
	assert.Contains(t, resp, "cavaliers_data")
}

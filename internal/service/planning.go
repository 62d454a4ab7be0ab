package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"github.com/adeline-t/horse-calendar/internal/domain"
	"github.com/adeline-t/horse-calendar/internal/repo"
)

// PlanningService implements business logic for day assignments.
// It also holds the cavalier repo because the stats report bundles the
// roster alongside the per-cavalier counts.
type PlanningService struct {
	assignments repo.AssignmentRepo
	cavaliers   repo.CavalierRepo
}

// NewPlanningService constructs a PlanningService backed by the provided repos.
func NewPlanningService(assignments repo.AssignmentRepo, cavaliers repo.CavalierRepo) *PlanningService {
	return &PlanningService{assignments: assignments, cavaliers: cavaliers}
}

// Snapshot returns the full assignment state keyed by day.
func (s *PlanningService) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	snapshot, err := s.assignments.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PlanningService.Snapshot: %w", err)
	}
	return snapshot, nil
}

// Save replaces the full record for one day and returns the authoritative
// snapshot of all days. A record with no cavaliers, no comment and no work
// type removes the day instead of storing an empty row.
//
// Returns domain.ErrValidation for a malformed date, an unknown work type,
// or a cavalier name listed twice.
func (s *PlanningService) Save(ctx context.Context, key domain.DateKey, rec domain.DayRecord) (domain.Snapshot, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if !key.Valid() {
		return nil, fmt.Errorf("%w: invalid date %q", domain.ErrValidation, key)
	}
	if !rec.WorkType.Valid() {
		return nil, fmt.Errorf("%w: unknown work type %q", domain.ErrValidation, rec.WorkType)
	}
	if dup, ok := firstDuplicate(rec.Cavaliers); ok {
		return nil, fmt.Errorf("%w: cavalier %q listed twice", domain.ErrValidation, dup)
	}

	if rec.Empty() {
		if err := s.assignments.Delete(ctx, key); err != nil {
			return nil, fmt.Errorf("service.PlanningService.Save: %w", err)
		}
	} else {
		if err := s.assignments.Upsert(ctx, key, rec); err != nil {
			return nil, fmt.Errorf("service.PlanningService.Save: %w", err)
		}
	}

	return s.Snapshot(ctx)
}

// Stats aggregates assignment counts per cavalier and per work type.
// When both month ("01".."12") and year ("2024") are non-empty, only days
// in that month are counted; otherwise the whole history is.
func (s *PlanningService) Stats(ctx context.Context, month, year string) (domain.StatsReport, error) {
	snapshot, err := s.assignments.GetAll(ctx)
	if err != nil {
		return domain.StatsReport{}, fmt.Errorf("service.PlanningService.Stats: %w", err)
	}
	roster, err := s.cavaliers.List(ctx)
	if err != nil {
		return domain.StatsReport{}, fmt.Errorf("service.PlanningService.Stats: %w", err)
	}

	report := domain.StatsReport{
		CavalierCounts: map[string]int{},
		WorkTypeCounts: map[domain.WorkType]int{},
		Cavaliers:      roster,
	}
	if report.Cavaliers == nil {
		report.Cavaliers = []domain.Cavalier{}
	}

	// Query parameters arrive unpadded ("6") while keys carry "06";
	// compare numerically so both spellings filter the same month.
	filter := month != "" && year != ""
	var wantMonth, wantYear int
	if filter {
		var merr, yerr error
		wantMonth, merr = strconv.Atoi(month)
		wantYear, yerr = strconv.Atoi(year)
		if merr != nil || yerr != nil {
			return domain.StatsReport{}, fmt.Errorf("service.PlanningService.Stats: month/year must be numeric: %w", domain.ErrValidation)
		}
	}

	for key, rec := range snapshot {
		if filter {
			y, m := key.YearMonth()
			ky, _ := strconv.Atoi(y)
			km, _ := strconv.Atoi(m)
			if ky != wantYear || km != wantMonth {
				continue
			}
		}
		for _, name := range rec.Cavaliers {
			report.CavalierCounts[name]++
		}
		if rec.WorkType != "" {
			report.WorkTypeCounts[rec.WorkType]++
		}
	}

	return report, nil
}

// firstDuplicate returns the first name that appears more than once.
func firstDuplicate(names []string) (string, bool) {
	dups := lo.FindDuplicates(names)
	if len(dups) == 0 {
		return "", false
	}
	return dups[0], true
}

// Package planner holds the client-side planning state: a Store mirroring
// the server's roster and day-record snapshot, and an Editor driving the
// open/edit/close cycle for a single day.
package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/adeline-t/horse-calendar/internal/domain"
)

// Persister is the slice of the API the Store needs. *client.Client
// satisfies it.
type Persister interface {
	Cavaliers(ctx context.Context) ([]domain.Cavalier, error)
	Assignments(ctx context.Context) (domain.Snapshot, error)
	SaveDay(ctx context.Context, key domain.DateKey, rec domain.DayRecord) (domain.Snapshot, error)
	CreateCavalier(ctx context.Context, cav domain.Cavalier) ([]domain.Cavalier, error)
	UpdateCavalier(ctx context.Context, index int, patch domain.CavalierPatch) ([]domain.Cavalier, error)
	DeleteCavalier(ctx context.Context, index int) ([]domain.Cavalier, error)
}

// Store mirrors server state. Local state is replaced by the server's
// response on every successful mutation and left untouched on failure,
// so it never drifts into a state the server has not confirmed.
type Store struct {
	api      Persister
	roster   []domain.Cavalier
	snapshot domain.Snapshot
}

// NewStore returns an empty Store backed by api. Call Refresh before use.
func NewStore(api Persister) *Store {
	return &Store{api: api, snapshot: domain.Snapshot{}}
}

// Refresh loads the roster and snapshot from the server.
func (s *Store) Refresh(ctx context.Context) error {
	roster, err := s.api.Cavaliers(ctx)
	if err != nil {
		return fmt.Errorf("planner: refresh roster: %w", err)
	}
	snapshot, err := s.api.Assignments(ctx)
	if err != nil {
		return fmt.Errorf("planner: refresh assignments: %w", err)
	}
	s.roster = roster
	if snapshot == nil {
		snapshot = domain.Snapshot{}
	}
	s.snapshot = snapshot
	return nil
}

// Roster returns the cached roster.
func (s *Store) Roster() []domain.Cavalier {
	return s.roster
}

// Day returns the cached record for key; the zero record when absent.
func (s *Store) Day(key domain.DateKey) domain.DayRecord {
	return s.snapshot[key]
}

// Get returns the cached record for key and whether it exists.
func (s *Store) Get(key domain.DateKey) (domain.DayRecord, bool) {
	rec, ok := s.snapshot[key]
	return rec, ok
}

// Snapshot returns the cached day-record map.
func (s *Store) Snapshot() domain.Snapshot {
	return s.snapshot
}

// ActiveOn returns the cached cavaliers whose activity window covers key.
func (s *Store) ActiveOn(key domain.DateKey) []domain.Cavalier {
	return lo.Filter(s.roster, func(c domain.Cavalier, _ int) bool {
		return c.StatusOn(key) == domain.StatusActive
	})
}

// SaveDay persists the full record for one day. The server's returned
// snapshot is adopted only when the save succeeds.
func (s *Store) SaveDay(ctx context.Context, key domain.DateKey, rec domain.DayRecord) error {
	if !key.Valid() {
		return fmt.Errorf("planner: save %q: %w", key, domain.ErrValidation)
	}
	if dup := lo.FindDuplicates(rec.Cavaliers); len(dup) > 0 {
		return fmt.Errorf("planner: save %s: duplicate cavalier %q: %w", key, dup[0], domain.ErrValidation)
	}
	snapshot, err := s.api.SaveDay(ctx, key, rec)
	if err != nil {
		return err
	}
	if snapshot == nil {
		snapshot = domain.Snapshot{}
	}
	s.snapshot = snapshot
	return nil
}

// Assign appends name to the day's cavalier list and saves. A name
// already assigned on that day is rejected.
func (s *Store) Assign(ctx context.Context, key domain.DateKey, name string) error {
	rec := s.snapshot[key]
	if rec.Assigned(name) {
		return fmt.Errorf("planner: assign %q on %s: already assigned: %w", name, key, domain.ErrValidation)
	}
	rec.Cavaliers = append(append([]string{}, rec.Cavaliers...), name)
	return s.SaveDay(ctx, key, rec)
}

// Unassign removes the cavalier at index from the day's list, preserving
// the order of the rest, and saves. On the last cavalier of an otherwise
// empty record the save deletes the day.
func (s *Store) Unassign(ctx context.Context, key domain.DateKey, index int) error {
	rec := s.snapshot[key]
	if index < 0 || index >= len(rec.Cavaliers) {
		return fmt.Errorf("planner: unassign index %d on %s: %w", index, key, domain.ErrValidation)
	}
	names := append([]string{}, rec.Cavaliers[:index]...)
	rec.Cavaliers = append(names, rec.Cavaliers[index+1:]...)
	return s.SaveDay(ctx, key, rec)
}

// AddCavalier appends a roster member. A name already on the roster
// (case-insensitive) or an invalid activity window is rejected locally,
// before any request goes out; the server enforces the same rules.
func (s *Store) AddCavalier(ctx context.Context, cav domain.Cavalier) error {
	for _, existing := range s.roster {
		if strings.EqualFold(existing.Name, cav.Name) {
			return fmt.Errorf("planner: add %q: name already on roster: %w", cav.Name, domain.ErrValidation)
		}
	}
	if err := validateWindow(cav.StartDate, cav.EndDate); err != nil {
		return fmt.Errorf("planner: add %q: %w", cav.Name, err)
	}
	roster, err := s.api.CreateCavalier(ctx, cav)
	if err != nil {
		return err
	}
	s.roster = roster
	return nil
}

// UpdateCavalier patches the roster entry at index. The activity window
// resulting from the merge is validated locally before the request.
func (s *Store) UpdateCavalier(ctx context.Context, index int, patch domain.CavalierPatch) error {
	if index < 0 || index >= len(s.roster) {
		return fmt.Errorf("planner: update index %d: %w", index, domain.ErrValidation)
	}
	start, end := s.roster[index].StartDate, s.roster[index].EndDate
	if patch.StartDate != nil {
		start = *patch.StartDate
	}
	if patch.EndDate != nil {
		end = *patch.EndDate
	}
	if err := validateWindow(start, end); err != nil {
		return fmt.Errorf("planner: update index %d: %w", index, err)
	}
	roster, err := s.api.UpdateCavalier(ctx, index, patch)
	if err != nil {
		return err
	}
	s.roster = roster
	return nil
}

// validateWindow checks that both bounds are well-formed dates (empty
// means unbounded) and that start does not come after end.
func validateWindow(start, end domain.DateKey) error {
	if start != "" && !start.Valid() {
		return fmt.Errorf("start date %q: %w", start, domain.ErrValidation)
	}
	if end != "" && !end.Valid() {
		return fmt.Errorf("end date %q: %w", end, domain.ErrValidation)
	}
	if start != "" && end != "" && start > end {
		return fmt.Errorf("start %s after end %s: %w", start, end, domain.ErrValidation)
	}
	return nil
}

// RemoveCavalier deletes the roster entry at index. Past assignments
// keep the removed name.
func (s *Store) RemoveCavalier(ctx context.Context, index int) error {
	if index < 0 || index >= len(s.roster) {
		return fmt.Errorf("planner: remove index %d: %w", index, domain.ErrValidation)
	}
	roster, err := s.api.DeleteCavalier(ctx, index)
	if err != nil {
		return err
	}
	s.roster = roster
	return nil
}

// Package service contains the business logic for the horse-calendar API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/adeline-t/horse-calendar/internal/domain"
	"github.com/adeline-t/horse-calendar/internal/repo"
)

var validate = validator.New()

// RosterService implements business logic for the cavalier roster.
// The API addresses cavaliers by their position in the roster list, so
// every mutation resolves the index against the current ordering first.
type RosterService struct {
	cavaliers repo.CavalierRepo
}

// NewRosterService constructs a RosterService backed by the provided repo.
func NewRosterService(r repo.CavalierRepo) *RosterService {
	return &RosterService{cavaliers: r}
}

// List returns the full roster in position order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *RosterService) List(ctx context.Context) ([]domain.Cavalier, error) {
	cavaliers, err := s.cavaliers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RosterService.List: %w", err)
	}
	if cavaliers == nil {
		return []domain.Cavalier{}, nil
	}
	return cavaliers, nil
}

// Create validates and appends a new cavalier, then returns the updated
// roster. Names are unique case-insensitively; a missing color falls back
// to domain.DefaultColor.
func (s *RosterService) Create(ctx context.Context, c domain.Cavalier) ([]domain.Cavalier, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Color == "" {
		c.Color = domain.DefaultColor
	}
	if err := validateCavalier(c); err != nil {
		return nil, err
	}

	existing, err := s.cavaliers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RosterService.Create: %w", err)
	}
	if nameTaken(existing, c.Name, -1) {
		return nil, fmt.Errorf("%w: cavalier %q already exists", domain.ErrValidation, c.Name)
	}

	if _, err := s.cavaliers.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("service.RosterService.Create: %w", err)
	}
	return s.List(ctx)
}

// UpdateAt applies a partial update to the cavalier at the given roster
// index and returns the updated roster. The merged record is re-validated,
// including the start/end ordering, before anything is persisted.
func (s *RosterService) UpdateAt(ctx context.Context, index int, patch domain.CavalierPatch) ([]domain.Cavalier, error) {
	roster, err := s.cavaliers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RosterService.UpdateAt: %w", err)
	}
	if index < 0 || index >= len(roster) {
		return nil, fmt.Errorf("%w: roster index %d", domain.ErrNotFound, index)
	}

	c := roster[index]
	if patch.Name != nil {
		c.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Color != nil {
		c.Color = *patch.Color
	}
	if patch.StartDate != nil {
		c.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		c.EndDate = *patch.EndDate
	}

	if err := validateCavalier(c); err != nil {
		return nil, err
	}
	if nameTaken(roster, c.Name, index) {
		return nil, fmt.Errorf("%w: cavalier %q already exists", domain.ErrValidation, c.Name)
	}

	if _, err := s.cavaliers.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("service.RosterService.UpdateAt: %w", err)
	}
	return s.List(ctx)
}

// DeleteAt removes the cavalier at the given roster index and returns the
// updated roster. Historical day records keep the deleted name — there is
// no cascade into assignments.
func (s *RosterService) DeleteAt(ctx context.Context, index int) ([]domain.Cavalier, error) {
	roster, err := s.cavaliers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RosterService.DeleteAt: %w", err)
	}
	if index < 0 || index >= len(roster) {
		return nil, fmt.Errorf("%w: roster index %d", domain.ErrNotFound, index)
	}

	if err := s.cavaliers.Delete(ctx, roster[index].ID); err != nil {
		return nil, fmt.Errorf("service.RosterService.DeleteAt: %w", err)
	}
	return s.List(ctx)
}

// ActiveOn returns the cavaliers assignable on the given day.
// An empty date returns the whole roster, matching the original API.
func (s *RosterService) ActiveOn(ctx context.Context, date domain.DateKey) ([]domain.Cavalier, error) {
	roster, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.RosterService.ActiveOn: %w", err)
	}
	if date == "" {
		return roster, nil
	}
	if !date.Valid() {
		return nil, fmt.Errorf("%w: invalid date %q", domain.ErrValidation, date)
	}

	return lo.Filter(roster, func(c domain.Cavalier, _ int) bool {
		return c.ActiveOn(date)
	}), nil
}

// validateCavalier enforces the field rules shared by Create and UpdateAt:
// non-empty name, #RRGGBB color, well-formed optional dates, and
// start <= end when both bounds are set.
func validateCavalier(c domain.Cavalier) error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := validate.Var(c.Color, "hexcolor"); err != nil || len(c.Color) != 7 {
		return fmt.Errorf("%w: color must be #RRGGBB", domain.ErrValidation)
	}
	if c.StartDate != "" && !c.StartDate.Valid() {
		return fmt.Errorf("%w: invalid start date %q", domain.ErrValidation, c.StartDate)
	}
	if c.EndDate != "" && !c.EndDate.Valid() {
		return fmt.Errorf("%w: invalid end date %q", domain.ErrValidation, c.EndDate)
	}
	if c.StartDate != "" && c.EndDate != "" && c.StartDate > c.EndDate {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	return nil
}

// nameTaken reports whether name already belongs to a roster entry at an
// index other than exclude (pass -1 when creating).
func nameTaken(roster []domain.Cavalier, name string, exclude int) bool {
	for i, c := range roster {
		if i != exclude && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

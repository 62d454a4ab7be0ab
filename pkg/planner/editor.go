package planner

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/adeline-t/horse-calendar/internal/domain"
)

// Editor drives the edit cycle for a single day. It starts closed; Open
// targets one day, the mutators persist through the Store, and Close
// returns it to the closed state. Every mutation is a full read-modify-
// write of the day's record, so the last save wins.
type Editor struct {
	store *Store
	key   domain.DateKey
	open  bool
}

// NewEditor returns a closed Editor over store.
func NewEditor(store *Store) *Editor {
	return &Editor{store: store}
}

// IsOpen reports whether a day is currently being edited.
func (e *Editor) IsOpen() bool {
	return e.open
}

// Key returns the day being edited; empty when closed.
func (e *Editor) Key() domain.DateKey {
	if !e.open {
		return ""
	}
	return e.key
}

// Open targets key for editing. Opening while already open switches days.
func (e *Editor) Open(key domain.DateKey) error {
	if !key.Valid() {
		return fmt.Errorf("planner: open %q: %w", key, domain.ErrValidation)
	}
	e.key = key
	e.open = true
	return nil
}

// Close leaves the edit cycle. Pending state lives on the server, so
// closing discards nothing.
func (e *Editor) Close() {
	e.open = false
	e.key = ""
}

// Record returns the current record for the open day.
func (e *Editor) Record() (domain.DayRecord, error) {
	if !e.open {
		return domain.DayRecord{}, fmt.Errorf("planner: no day open: %w", domain.ErrValidation)
	}
	return e.store.Day(e.key), nil
}

// Eligible returns the cavaliers active on the open day and not yet
// assigned to it.
func (e *Editor) Eligible() ([]domain.Cavalier, error) {
	if !e.open {
		return nil, fmt.Errorf("planner: no day open: %w", domain.ErrValidation)
	}
	rec := e.store.Day(e.key)
	return lo.Filter(e.store.ActiveOn(e.key), func(c domain.Cavalier, _ int) bool {
		return !rec.Assigned(c.Name)
	}), nil
}

// Toggle assigns name to the open day when absent and unassigns it when
// present, preserving the order of the remaining assignments.
func (e *Editor) Toggle(ctx context.Context, name string) error {
	if !e.open {
		return fmt.Errorf("planner: no day open: %w", domain.ErrValidation)
	}
	rec := e.store.Day(e.key)
	if i := lo.IndexOf(rec.Cavaliers, name); i >= 0 {
		return e.store.Unassign(ctx, e.key, i)
	}
	return e.store.Assign(ctx, e.key, name)
}

// SetComment replaces the open day's comment.
func (e *Editor) SetComment(ctx context.Context, comment string) error {
	if !e.open {
		return fmt.Errorf("planner: no day open: %w", domain.ErrValidation)
	}
	rec := e.store.Day(e.key)
	rec.Comment = comment
	return e.store.SaveDay(ctx, e.key, rec)
}

// SetWorkType replaces the open day's work type. An empty work type
// clears it.
func (e *Editor) SetWorkType(ctx context.Context, wt domain.WorkType) error {
	if !e.open {
		return fmt.Errorf("planner: no day open: %w", domain.ErrValidation)
	}
	if !wt.Valid() {
		return fmt.Errorf("planner: work type %q: %w", wt, domain.ErrValidation)
	}
	rec := e.store.Day(e.key)
	rec.WorkType = wt
	return e.store.SaveDay(ctx, e.key, rec)
}

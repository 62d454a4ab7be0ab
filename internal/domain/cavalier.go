package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultColor is the badge color used when a cavalier has none assigned.
const DefaultColor = "#667eea"

// Cavalier represents a roster member who can be assigned to calendar days.
// Name is the identity used by assignments — there is no surrogate key on
// the wire; the uuid and Position exist only in storage, where Position
// defines the roster order that index-based API addressing relies on.
//
// StartDate and EndDate bound the active window (inclusive). Empty string
// means unbounded on that side; both empty means always active.
type Cavalier struct {
	ID        uuid.UUID `json:"-"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	StartDate DateKey   `json:"start_date"`
	EndDate   DateKey   `json:"end_date"`
	Position  int       `json:"-"`
	CreatedAt time.Time `json:"-"`
}

// CavalierPatch carries the optional fields of a roster update.
// Nil means "leave unchanged"; a pointer to "" clears a date bound.
type CavalierPatch struct {
	Name      *string
	Color     *string
	StartDate *DateKey
	EndDate   *DateKey
}

// Status is a cavalier's standing relative to a reference date, derived
// from the active window. It is never stored.
type Status string

const (
	StatusActive   Status = "active"
	StatusUpcoming Status = "upcoming"
	StatusEnded    Status = "ended"
)

// StatusOn derives the cavalier's status for the given reference date.
// The ended check runs before the upcoming check, so a window entirely in
// the past reports ended even though today also precedes nothing.
func (c Cavalier) StatusOn(today DateKey) Status {
	if c.StartDate == "" && c.EndDate == "" {
		return StatusActive
	}
	if c.EndDate != "" && today > c.EndDate {
		return StatusEnded
	}
	if c.StartDate != "" && today < c.StartDate {
		return StatusUpcoming
	}
	return StatusActive
}

// ActiveOn reports whether the cavalier may be assigned on the given day.
func (c Cavalier) ActiveOn(date DateKey) bool {
	return c.StatusOn(date) == StatusActive
}

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/adeline-t/horse-calendar/internal/domain"
)

var (
	headerColor   = color.New(color.FgCyan, color.Bold)
	otherDimColor = color.New(color.Faint)
	assignedColor = color.New(color.FgGreen)
	commentColor  = color.New(color.FgYellow)
)

// renderGrid prints a month as six Monday-first weeks. In-month days with
// assignments show the count and the work-type icon; days from adjacent
// months are dimmed.
func renderGrid(w io.Writer, year int, month time.Month, snapshot domain.Snapshot) {
	headerColor.Fprintf(w, "%s %d\n", month, year)
	fmt.Fprintln(w, " Mo    Tu    We    Th    Fr    Sa    Su")

	cells := domain.BuildGrid(year, month)
	for i, c := range cells {
		fmt.Fprint(w, formatCell(c, snapshot))
		if (i+1)%7 == 0 {
			fmt.Fprintln(w)
		}
	}
}

func formatCell(c domain.GridCell, snapshot domain.Snapshot) string {
	label := fmt.Sprintf("%2d", c.Day)
	if c.IsOtherMonth {
		return otherDimColor.Sprintf(" %s    ", label)
	}

	day, ok := snapshot[c.DateKey]
	if !ok {
		return fmt.Sprintf(" %s    ", label)
	}

	marker := "   "
	switch {
	case day.WorkType != "":
		marker = day.WorkType.Icon() + " "
	case day.Comment != "":
		marker = commentColor.Sprint("✎  ")
	}
	if n := len(day.Cavaliers); n > 0 {
		return assignedColor.Sprintf(" %s:%d", label, n) + " " + marker
	}
	return fmt.Sprintf(" %s ", label) + marker
}

// renderDay prints the full record for one day.
func renderDay(w io.Writer, key domain.DateKey, rec domain.DayRecord) {
	headerColor.Fprintln(w, string(key))
	if rec.Empty() {
		fmt.Fprintln(w, "  nothing planned")
		return
	}
	if rec.WorkType != "" {
		fmt.Fprintf(w, "  work: %s %s\n", rec.WorkType.Icon(), rec.WorkType.Label())
	}
	for i, name := range rec.Cavaliers {
		assignedColor.Fprintf(w, "  %d. %s\n", i+1, name)
	}
	if rec.Comment != "" {
		commentColor.Fprintf(w, "  note: %s\n", rec.Comment)
	}
}

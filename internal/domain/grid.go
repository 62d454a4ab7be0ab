package domain

import "time"

// GridCells is the fixed size of a rendered month: six full Monday-first
// weeks. Padding cells from the adjacent months keep the count stable
// regardless of month length or weekday alignment.
const GridCells = 42

// GridCell is one day slot in the 6×7 month view.
type GridCell struct {
	Day          int
	Year         int
	Month        time.Month
	IsOtherMonth bool
	DateKey      DateKey
}

// BuildGrid derives the 42-cell Monday-first grid for a month: leading days
// from the previous month in ascending order ending the day before the 1st,
// one cell per day of the target month, then trailing days from the next
// month until the grid is full. Pure function — callers overlay day records
// and cavalier colors themselves.
func BuildGrid(year int, month time.Month) []GridCell {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	// time.Weekday counts Sunday as 0; rotate so Monday is 0.
	lead := (int(first.Weekday()) + 6) % 7

	daysIn := daysInMonth(year, month)

	prev := first.AddDate(0, -1, 0)
	prevDays := daysInMonth(prev.Year(), prev.Month())

	next := first.AddDate(0, 1, 0)

	cells := make([]GridCell, 0, GridCells)
	for i := lead - 1; i >= 0; i-- {
		cells = append(cells, cell(prev.Year(), prev.Month(), prevDays-i, true))
	}
	for day := 1; day <= daysIn; day++ {
		cells = append(cells, cell(year, month, day, false))
	}
	for day := 1; len(cells) < GridCells; day++ {
		cells = append(cells, cell(next.Year(), next.Month(), day, true))
	}
	return cells
}

func cell(year int, month time.Month, day int, other bool) GridCell {
	return GridCell{
		Day:          day,
		Year:         year,
		Month:        month,
		IsOtherMonth: other,
		DateKey:      NewDateKey(year, month, day),
	}
}

// daysInMonth returns the number of days in the given month.
// Day 0 of the next month normalizes to the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

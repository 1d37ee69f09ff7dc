package tournament

import (
	"time"
)

// Day is one cell of a month grid.
type Day struct {
	Date        time.Time
	InMonth     bool
	Tournaments []Tournament
}

// Month is a Monday-first grid of whole weeks covering one calendar month.
type Month struct {
	First time.Time // first day of the month, UTC midnight
	Weeks [][]Day
}

// Prev returns the first day of the previous month.
func (m Month) Prev() time.Time { return m.First.AddDate(0, -1, 0) }

// Next returns the first day of the following month.
func (m Month) Next() time.Time { return m.First.AddDate(0, 1, 0) }

// EventCount returns how many tournaments overlap the month.
func (m Month) EventCount() int {
	seen := make(map[int64]bool)
	for _, week := range m.Weeks {
		for _, d := range week {
			if !d.InMonth {
				continue
			}
			for _, t := range d.Tournaments {
				seen[t.ID] = true
			}
		}
	}
	return len(seen)
}

// BuildMonth lays tournaments onto the grid for the month containing anchor.
// A tournament appears on every day from StartDate through LastDay.
// PRE: none
// POST: Weeks has 4-6 rows of 7 days; days outside the month have InMonth=false
func BuildMonth(anchor time.Time, tournaments []Tournament) Month {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	// Monday-first: Sunday (0) becomes offset 6.
	offset := (int(first.Weekday()) + 6) % 7
	start := first.AddDate(0, 0, -offset)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	weeks := (offset + daysInMonth + 6) / 7

	m := Month{First: first, Weeks: make([][]Day, weeks)}
	for w := range m.Weeks {
		m.Weeks[w] = make([]Day, 7)
		for d := range m.Weeks[w] {
			day := start.AddDate(0, 0, w*7+d)
			cell := Day{Date: day, InMonth: day.Month() == first.Month()}
			for _, t := range tournaments {
				if coversDay(t, day) {
					cell.Tournaments = append(cell.Tournaments, t)
				}
			}
			m.Weeks[w][d] = cell
		}
	}
	return m
}

func coversDay(t Tournament, day time.Time) bool {
	if t.StartDate.IsZero() {
		return false
	}
	from := truncateDay(t.StartDate)
	to := truncateDay(t.LastDay())
	return !day.Before(from) && !day.After(to)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseMonth parses "YYYY-MM", falling back to the month of now.
func ParseMonth(value string, now time.Time) time.Time {
	if t, err := time.Parse("2006-01", value); err == nil {
		return t
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}

package streak

import (
	"time"

	"github.com/fardannozami/habit-streak/internal/domain"
)

// CalendarDay is one cell of a month view.
type CalendarDay struct {
	Day       domain.Day `json:"day"`
	Weekday   string     `json:"weekday"`
	Completed bool       `json:"completed"`
}

// Calendar lays out every day of the given month and flags the ones present
// in days.
func Calendar(days []domain.Day, year int, month time.Month) []CalendarDay {
	done := make(map[string]bool, len(days))
	for _, d := range days {
		done[d.String()] = true
	}

	first := domain.NewDay(year, month, 1)
	next := domain.NewDay(year, month+1, 1)
	out := make([]CalendarDay, 0, next.DaysSince(first))
	for d := first; d.Before(next); d = d.AddDays(1) {
		out = append(out, CalendarDay{
			Day:       d,
			Weekday:   d.Time().Weekday().String()[:3],
			Completed: done[d.String()],
		})
	}
	return out
}

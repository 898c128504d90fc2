package usecase

import (
	"time"

	"github.com/fardannozami/habit-streak/internal/domain"
)

// TodayFunc returns the current calendar day.
type TodayFunc func() domain.Day

// TodayIn reads now in loc and keeps the calendar date. A nil now means
// time.Now.
func TodayIn(loc *time.Location, now func() time.Time) TodayFunc {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return func() domain.Day {
		return domain.DayOf(now().In(loc))
	}
}

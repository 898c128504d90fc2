// Package streak turns a habit's completion days into streak and adherence
// figures. Everything here is pure: no clock, no store.
//
// Inputs are treated as a set of days. Callers that read days from a store
// should go through Compute, which refuses input holding the same day twice.
package streak

import (
	"fmt"
	"sort"

	"github.com/fardannozami/habit-streak/internal/domain"
)

// Result is the derived view of one habit's completion set.
type Result struct {
	CurrentStreak  int
	MaxStreak      int
	SuccessRate    float64
	LastCompletion domain.Day
}

// Current counts the unbroken run of days ending at the most recent
// completion. It is anchored to that completion, not to today.
func Current(days []domain.Day) int {
	if len(days) == 0 {
		return 0
	}
	sorted := sortedDesc(days)

	count := 1
	prev := sorted[0]
	for _, d := range sorted[1:] {
		if prev.DaysSince(d) != 1 {
			break
		}
		count++
		prev = d
	}
	return count
}

// Max returns the longest run of consecutive days.
func Max(days []domain.Day) int {
	if len(days) == 0 {
		return 0
	}
	sorted := sortedAsc(days)

	best, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i].DaysSince(sorted[i-1]) == 1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}

// SuccessRate is completed days over the inclusive span between the first and
// last completion. Days before the first completion are not counted against
// the habit.
func SuccessRate(days []domain.Day) float64 {
	if len(days) == 0 {
		return 0
	}
	first, last := bounds(days)
	total := last.DaysSince(first) + 1
	if total < 1 {
		total = 1
	}
	return float64(len(days)) / float64(total)
}

// Compute is the rebuild function for domain.HabitStats.
func Compute(days []domain.Day) (Result, error) {
	if dup, ok := firstDuplicate(days); ok {
		return Result{}, fmt.Errorf("%w: day %s recorded more than once", domain.ErrInvariantViolation, dup)
	}
	if len(days) == 0 {
		return Result{}, nil
	}
	_, last := bounds(days)
	return Result{
		CurrentStreak:  Current(days),
		MaxStreak:      Max(days),
		SuccessRate:    SuccessRate(days),
		LastCompletion: last,
	}, nil
}

// IsAlive reports whether a streak whose last completion is last can still
// be extended on today: true when last is today or yesterday.
func IsAlive(last, today domain.Day) bool {
	if last.IsZero() {
		return false
	}
	gap := today.DaysSince(last)
	return gap == 0 || gap == 1
}

// Stats converts r into the cached record for habitID.
func (r Result) Stats(habitID string) domain.HabitStats {
	return domain.HabitStats{
		HabitID:            habitID,
		CurrentStreak:      r.CurrentStreak,
		MaxStreak:          r.MaxStreak,
		SuccessRate:        r.SuccessRate,
		LastCompletionDate: r.LastCompletion,
	}
}

func sortedAsc(days []domain.Day) []domain.Day {
	out := append([]domain.Day(nil), days...)
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func sortedDesc(days []domain.Day) []domain.Day {
	out := append([]domain.Day(nil), days...)
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })
	return out
}

func bounds(days []domain.Day) (first, last domain.Day) {
	first, last = days[0], days[0]
	for _, d := range days[1:] {
		if d.Before(first) {
			first = d
		}
		if d.After(last) {
			last = d
		}
	}
	return first, last
}

func firstDuplicate(days []domain.Day) (domain.Day, bool) {
	seen := make(map[int64]struct{}, len(days))
	for _, d := range days {
		key := d.Time().Unix()
		if _, ok := seen[key]; ok {
			return d, true
		}
		seen[key] = struct{}{}
	}
	return domain.Day{}, false
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fardannozami/habit-streak/internal/domain"
	"github.com/fardannozami/habit-streak/internal/logger"
	"github.com/fardannozami/habit-streak/internal/streak"
)

// errStatsNotSaved marks a rebuild whose result was computed but could not
// be written back. The returned stats are still valid.
var errStatsNotSaved = errors.New("stats computed but not saved")

// statsBuilder is the single rebuild path shared by check-in, recompute and
// self-healing reads.
type statsBuilder struct {
	store domain.Store
	locks *HabitLocks
	now   func() time.Time
}

func newStatsBuilder(store domain.Store, locks *HabitLocks) statsBuilder {
	if locks == nil {
		locks = NewHabitLocks()
	}
	return statsBuilder{store: store, locks: locks, now: time.Now}
}

// rebuild replays the habit's completion log and overwrites its stats.
// No completions means the stats record is removed.
func (b statsBuilder) rebuild(ctx context.Context, habitID string) (domain.HabitStats, error) {
	unlock := b.locks.Lock(habitID)
	defer unlock()

	days, err := b.store.ListCompletionDays(ctx, habitID)
	if err != nil {
		return domain.HabitStats{}, classify(err)
	}

	result, err := streak.Compute(days)
	if err != nil {
		logger.Error("completion log is inconsistent", "habit_id", habitID, "error", err)
		return domain.HabitStats{}, err
	}

	stats := result.Stats(habitID)
	stats.UpdatedAt = b.now()

	if len(days) == 0 {
		if err := b.store.DeleteStats(ctx, habitID); err != nil {
			return stats, fmt.Errorf("%w: %w", errStatsNotSaved, classify(err))
		}
		return stats, nil
	}

	if err := b.store.UpsertStats(ctx, &stats); err != nil {
		return stats, fmt.Errorf("%w: %w", errStatsNotSaved, classify(err))
	}
	return stats, nil
}

// classify leaves domain errors alone and marks anything else as a store
// failure.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrDuplicateCompletion),
		errors.Is(err, domain.ErrStoreUnavailable),
		errors.Is(err, domain.ErrInvariantViolation),
		errors.Is(err, domain.ErrInvalidHabit):
		return err
	default:
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
}

// loadOwned fetches a habit and checks it belongs to userID.
func loadOwned(ctx context.Context, repo domain.HabitRepository, habitID, userID string) (*domain.Habit, error) {
	habit, err := repo.GetHabit(ctx, habitID)
	if err != nil {
		return nil, classify(err)
	}
	if habit == nil {
		return nil, fmt.Errorf("%w: habit %s", domain.ErrNotFound, habitID)
	}
	if !habit.OwnedBy(userID) {
		return nil, fmt.Errorf("%w: habit %s", domain.ErrUnauthorized, habitID)
	}
	return habit, nil
}

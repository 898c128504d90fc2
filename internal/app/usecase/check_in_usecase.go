package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fardannozami/habit-streak/internal/domain"
	"github.com/fardannozami/habit-streak/internal/logger"
)

type CheckInResult struct {
	Habit *domain.Habit     `json:"habit"`
	Stats domain.HabitStats `json:"stats"`
	// Duplicate is true when the day was already recorded and nothing changed.
	Duplicate bool `json:"duplicate"`
}

type CheckInUsecase struct {
	store domain.Store
	stats statsBuilder
}

func NewCheckInUsecase(store domain.Store, locks *HabitLocks) *CheckInUsecase {
	return &CheckInUsecase{store: store, stats: newStatsBuilder(store, locks)}
}

// Execute records that userID completed habitID on day. Repeating a check-in
// for the same day is a successful no-op.
func (uc *CheckInUsecase) Execute(ctx context.Context, habitID, userID string, day domain.Day) (*CheckInResult, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: check-in day is required", domain.ErrInvalidHabit)
	}

	habit, err := loadOwned(ctx, uc.store, habitID, userID)
	if err != nil {
		return nil, err
	}

	completion := &domain.Completion{
		ID:             uuid.NewString(),
		HabitID:        habit.ID,
		UserID:         userID,
		CompletionDate: day,
		CreatedAt:      uc.stats.now(),
	}
	inserted, err := uc.store.InsertCompletion(ctx, completion)
	if err != nil && !errors.Is(err, domain.ErrDuplicateCompletion) {
		// A delete that lands between the ownership read and the insert
		// surfaces as a foreign key failure.
		if gone, getErr := uc.store.GetHabit(ctx, habit.ID); getErr == nil && gone == nil {
			return nil, fmt.Errorf("%w: habit %s was deleted", domain.ErrNotFound, habit.ID)
		}
		return nil, classify(err)
	}

	if !inserted {
		existing, err := uc.store.GetStats(ctx, habit.ID)
		if err != nil {
			return nil, classify(err)
		}
		if existing != nil {
			return &CheckInResult{Habit: habit, Stats: *existing, Duplicate: true}, nil
		}
		// A previous upsert was lost; rebuild instead of reporting zeros.
		logger.Warn("stats missing on duplicate check-in, rebuilding", "habit_id", habit.ID)
	}

	stats, err := uc.stats.rebuild(ctx, habit.ID)
	if err != nil {
		if !errors.Is(err, errStatsNotSaved) {
			return nil, err
		}
		logger.Warn("check-in recorded but stats upsert failed", "habit_id", habit.ID, "day", day, "error", err)
	}

	if inserted {
		logger.Info("check-in recorded", "habit_id", habit.ID, "user_id", userID, "day", day, "current_streak", stats.CurrentStreak)
	}
	return &CheckInResult{Habit: habit, Stats: stats, Duplicate: !inserted}, nil
}

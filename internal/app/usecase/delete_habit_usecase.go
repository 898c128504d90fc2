package usecase

import (
	"context"

	"github.com/fardannozami/habit-streak/internal/domain"
	"github.com/fardannozami/habit-streak/internal/logger"
)

type DeleteHabitUsecase struct {
	store domain.Store
	locks *HabitLocks
}

func NewDeleteHabitUsecase(store domain.Store, locks *HabitLocks) *DeleteHabitUsecase {
	if locks == nil {
		locks = NewHabitLocks()
	}
	return &DeleteHabitUsecase{store: store, locks: locks}
}

// Execute removes the habit with all of its completions and stats. The store
// applies the three deletions atomically.
func (uc *DeleteHabitUsecase) Execute(ctx context.Context, habitID, userID string) error {
	habit, err := loadOwned(ctx, uc.store, habitID, userID)
	if err != nil {
		return err
	}

	unlock := uc.locks.Lock(habit.ID)
	defer unlock()

	if err := uc.store.DeleteHabitCascade(ctx, habit.ID); err != nil {
		return classify(err)
	}
	logger.Info("habit deleted", "habit_id", habit.ID, "user_id", userID)
	return nil
}

package usecase

import (
	"context"
	"errors"

	"github.com/fardannozami/habit-streak/internal/domain"
	"github.com/fardannozami/habit-streak/internal/logger"
)

type GetStatsUsecase struct {
	store domain.Store
	stats statsBuilder
}

func NewGetStatsUsecase(store domain.Store, locks *HabitLocks) *GetStatsUsecase {
	return &GetStatsUsecase{store: store, stats: newStatsBuilder(store, locks)}
}

// Execute returns the cached stats. A missing record is rebuilt from the
// completion log, so a habit with no check-ins yields zeros.
func (uc *GetStatsUsecase) Execute(ctx context.Context, habitID, userID string) (domain.HabitStats, error) {
	habit, err := loadOwned(ctx, uc.store, habitID, userID)
	if err != nil {
		return domain.HabitStats{}, err
	}

	cached, err := uc.store.GetStats(ctx, habit.ID)
	if err != nil {
		return domain.HabitStats{}, classify(err)
	}
	if cached != nil {
		return *cached, nil
	}

	stats, err := uc.stats.rebuild(ctx, habit.ID)
	if err != nil && !errors.Is(err, errStatsNotSaved) {
		return domain.HabitStats{}, err
	}
	if err != nil {
		logger.Warn("stats rebuilt but not saved", "habit_id", habit.ID, "error", err)
	}
	return stats, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fardannozami/habit-streak/internal/domain"
	"github.com/fardannozami/habit-streak/internal/logger"
)

// RecomputeReport summarizes a full rebuild pass.
type RecomputeReport struct {
	Habits  int `json:"habits"`
	Rebuilt int `json:"rebuilt"`
	Failed  int `json:"failed"`
}

type RecomputeStatsUsecase struct {
	store domain.Store
	stats statsBuilder
}

func NewRecomputeStatsUsecase(store domain.Store, locks *HabitLocks) *RecomputeStatsUsecase {
	return &RecomputeStatsUsecase{store: store, stats: newStatsBuilder(store, locks)}
}

// Execute rebuilds one habit's stats from its completion log.
func (uc *RecomputeStatsUsecase) Execute(ctx context.Context, habitID, userID string) (domain.HabitStats, error) {
	habit, err := loadOwned(ctx, uc.store, habitID, userID)
	if err != nil {
		return domain.HabitStats{}, err
	}
	return uc.stats.rebuild(ctx, habit.ID)
}

// ExecuteAll rebuilds every habit. A failing habit does not stop the pass;
// all failures are returned joined. A positive perHabit bounds each store
// round trip (the listing and every rebuild) separately.
func (uc *RecomputeStatsUsecase) ExecuteAll(ctx context.Context, perHabit time.Duration) (RecomputeReport, error) {
	listCtx, cancel := withLimit(ctx, perHabit)
	habits, err := uc.store.ListAllHabits(listCtx)
	cancel()
	if err != nil {
		return RecomputeReport{}, classify(err)
	}

	report := RecomputeReport{Habits: len(habits)}
	var errs []error
	for _, h := range habits {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		habitCtx, cancel := withLimit(ctx, perHabit)
		_, err := uc.stats.rebuild(habitCtx, h.ID)
		cancel()
		if err != nil {
			report.Failed++
			errs = append(errs, fmt.Errorf("habit %s: %w", h.ID, err))
			logger.Warn("recompute failed", "habit_id", h.ID, "error", err)
			continue
		}
		report.Rebuilt++
	}

	logger.Info("recompute finished", "habits", report.Habits, "rebuilt", report.Rebuilt, "failed", report.Failed)
	return report, errors.Join(errs...)
}

func withLimit(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

package usecase

import (
	"context"

	"github.com/fardannozami/habit-streak/internal/domain"
	"github.com/fardannozami/habit-streak/internal/streak"
)

// HabitSummary is one dashboard row.
type HabitSummary struct {
	Habit          *domain.Habit     `json:"habit"`
	Stats          domain.HabitStats `json:"stats"`
	CompletedToday bool              `json:"completed_today"`
	// Alive is false once a full day has passed without a check-in; Stats
	// keeps reporting the streak as of the last completion.
	Alive bool `json:"alive"`
}

type ListHabitsUsecase struct {
	store domain.Store
}

func NewListHabitsUsecase(store domain.Store) *ListHabitsUsecase {
	return &ListHabitsUsecase{store: store}
}

// Execute lists userID's habits newest first, evaluated against today.
func (uc *ListHabitsUsecase) Execute(ctx context.Context, userID string, today domain.Day) ([]HabitSummary, error) {
	habits, err := uc.store.ListHabits(ctx, userID)
	if err != nil {
		return nil, classify(err)
	}

	summaries := make([]HabitSummary, 0, len(habits))
	for _, h := range habits {
		days, err := uc.store.ListCompletionDays(ctx, h.ID)
		if err != nil {
			return nil, classify(err)
		}

		var stats domain.HabitStats
		cached, err := uc.store.GetStats(ctx, h.ID)
		if err != nil {
			return nil, classify(err)
		}
		if cached != nil {
			stats = *cached
		} else {
			result, err := streak.Compute(days)
			if err != nil {
				return nil, err
			}
			stats = result.Stats(h.ID)
		}

		summaries = append(summaries, HabitSummary{
			Habit:          h,
			Stats:          stats,
			CompletedToday: containsDay(days, today),
			Alive:          streak.IsAlive(stats.LastCompletionDate, today),
		})
	}
	return summaries, nil
}

func containsDay(days []domain.Day, day domain.Day) bool {
	for _, d := range days {
		if d.Equal(day) {
			return true
		}
	}
	return false
}

package usecase

import (
	"context"

	"github.com/fardannozami/habit-streak/internal/domain"
)

// HabitPatch holds optional changes; nil fields are left as they are.
type HabitPatch struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Color         *string `json:"color"`
	Icon          *string `json:"icon"`
	GoalFrequency *string `json:"goal_frequency"`
}

type UpdateHabitUsecase struct {
	repo domain.HabitRepository
}

func NewUpdateHabitUsecase(repo domain.HabitRepository) *UpdateHabitUsecase {
	return &UpdateHabitUsecase{repo: repo}
}

func (uc *UpdateHabitUsecase) Execute(ctx context.Context, habitID, userID string, patch HabitPatch) (*domain.Habit, error) {
	habit, err := loadOwned(ctx, uc.repo, habitID, userID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		habit.Title = *patch.Title
	}
	if patch.Description != nil {
		habit.Description = *patch.Description
	}
	if patch.Color != nil {
		habit.Color = *patch.Color
	}
	if patch.Icon != nil {
		habit.Icon = domain.Icon(*patch.Icon)
	}
	if patch.GoalFrequency != nil {
		habit.GoalFrequency = domain.GoalFrequency(*patch.GoalFrequency)
	}

	habit.Normalize()
	if err := habit.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateHabit(ctx, habit); err != nil {
		return nil, classify(err)
	}
	return habit, nil
}

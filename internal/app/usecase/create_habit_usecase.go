package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fardannozami/habit-streak/internal/domain"
	"github.com/fardannozami/habit-streak/internal/logger"
)

// HabitInput carries the mutable attributes of a habit. Empty fields take
// the defaults.
type HabitInput struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Color         string `json:"color"`
	Icon          string `json:"icon"`
	GoalFrequency string `json:"goal_frequency"`
}

type CreateHabitUsecase struct {
	repo domain.HabitRepository
	now  func() time.Time
}

func NewCreateHabitUsecase(repo domain.HabitRepository) *CreateHabitUsecase {
	return &CreateHabitUsecase{repo: repo, now: time.Now}
}

func (uc *CreateHabitUsecase) Execute(ctx context.Context, userID string, in HabitInput) (*domain.Habit, error) {
	habit := &domain.Habit{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         in.Title,
		Description:   in.Description,
		Color:         in.Color,
		Icon:          domain.Icon(in.Icon),
		GoalFrequency: domain.GoalFrequency(in.GoalFrequency),
		CreatedAt:     uc.now(),
	}
	habit.Normalize()
	if err := habit.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateHabit(ctx, habit); err != nil {
		return nil, classify(err)
	}
	logger.Info("habit created", "habit_id", habit.ID, "user_id", userID, "title", habit.Title)
	return habit, nil
}

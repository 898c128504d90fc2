package usecase

import (
	"context"
	"time"

	"github.com/fardannozami/habit-streak/internal/domain"
	"github.com/fardannozami/habit-streak/internal/streak"
)

type GetCalendarUsecase struct {
	store domain.Store
}

func NewGetCalendarUsecase(store domain.Store) *GetCalendarUsecase {
	return &GetCalendarUsecase{store: store}
}

func (uc *GetCalendarUsecase) Execute(ctx context.Context, habitID, userID string, year int, month time.Month) ([]streak.CalendarDay, error) {
	habit, err := loadOwned(ctx, uc.store, habitID, userID)
	if err != nil {
		return nil, err
	}
	days, err := uc.store.ListCompletionDays(ctx, habit.ID)
	if err != nil {
		return nil, classify(err)
	}
	return streak.Calendar(days, year, month), nil
}

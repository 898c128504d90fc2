package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fardannozami/habit-streak/internal/domain"
)

// GetDashboardUsecase renders a user's habits as a chat message.
type GetDashboardUsecase struct {
	list *ListHabitsUsecase
}

func NewGetDashboardUsecase(list *ListHabitsUsecase) *GetDashboardUsecase {
	return &GetDashboardUsecase{list: list}
}

func (uc *GetDashboardUsecase) Execute(ctx context.Context, userID, name string, today domain.Day) (string, error) {
	summaries, err := uc.list.Execute(ctx, userID, today)
	if err != nil {
		return "", err
	}

	if len(summaries) == 0 {
		return fmt.Sprintf("%s belum punya habit. Buat dulu dengan #habit <judul> 💪", name), nil
	}

	alive, doneToday := 0, 0
	for _, s := range summaries {
		if s.Alive {
			alive++
		}
		if s.CompletedToday {
			doneToday++
		}
	}

	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("Habit %s (%s)\n\n", name, today.Time().Format("02-01-2006")))
	sb.WriteString("Recap:\n")
	sb.WriteString(fmt.Sprintf("%d/%d habit sudah checkin hari ini ✅\n", doneToday, len(summaries)))
	sb.WriteString(fmt.Sprintf("%d keep the streak 🔥\n", alive))
	sb.WriteString(fmt.Sprintf("%d lose the streak 💔\n\n", len(summaries)-alive))

	for i, s := range summaries {
		check := ""
		if s.CompletedToday {
			check = " ✅"
		}
		rate := int(s.Stats.SuccessRate*100 + 0.5)
		if s.Alive {
			sb.WriteString(fmt.Sprintf("%d. %s - %d days streak 🔥 (best %d, %d%%)%s\n", i+1, s.Habit.Title, s.Stats.CurrentStreak, s.Stats.MaxStreak, rate, check))
		} else {
			sb.WriteString(fmt.Sprintf("%d. %s - best %d 💔 (%d%%)\n", i+1, s.Habit.Title, s.Stats.MaxStreak, rate))
		}
	}

	if doneToday < len(summaries) {
		sb.WriteString("\nYang belum checkin langsung #checkin <judul> aja 💪")
	} else {
		sb.WriteString("\nSemua habit beres hari ini. Semangat🔥")
	}
	return sb.String(), nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fardannozami/habit-streak/internal/domain"
)

const (
	cmdHabit   = "#habit"
	cmdCheckIn = "#checkin"
	cmdLapor   = "#lapor"
	cmdStats   = "#stats"
	cmdHapus   = "#hapus"
)

// HandleMessageUsecase routes chat commands. Unknown text yields an empty
// reply, which the bot treats as "stay silent".
type HandleMessageUsecase struct {
	habits    domain.HabitRepository
	create    *CreateHabitUsecase
	checkIn   *CheckInUsecase
	dashboard *GetDashboardUsecase
	delete    *DeleteHabitUsecase
	today     TodayFunc
}

func NewHandleMessageUsecase(
	habits domain.HabitRepository,
	create *CreateHabitUsecase,
	checkIn *CheckInUsecase,
	dashboard *GetDashboardUsecase,
	del *DeleteHabitUsecase,
	today TodayFunc,
) *HandleMessageUsecase {
	return &HandleMessageUsecase{
		habits:    habits,
		create:    create,
		checkIn:   checkIn,
		dashboard: dashboard,
		delete:    del,
		today:     today,
	}
}

func (uc *HandleMessageUsecase) Execute(ctx context.Context, userID, name, msg string) (string, error) {
	cmd, arg := parseCommand(msg)

	switch cmd {
	case cmdHabit:
		return uc.handleCreate(ctx, userID, arg)
	case cmdCheckIn:
		return uc.handleCheckIn(ctx, userID, name, arg, false)
	case cmdLapor:
		return uc.handleCheckIn(ctx, userID, name, arg, true)
	case cmdStats:
		return uc.dashboard.Execute(ctx, userID, name, uc.today())
	case cmdHapus:
		return uc.handleDelete(ctx, userID, arg)
	}
	return "", nil
}

// parseCommand splits "#cmd rest of text" into a lower-cased command and the
// trimmed remainder.
func parseCommand(msg string) (string, string) {
	msg = strings.TrimSpace(msg)
	if !strings.HasPrefix(msg, "#") {
		return "", ""
	}
	fields := strings.Fields(msg)
	cmd := strings.ToLower(fields[0])
	arg := strings.TrimSpace(msg[len(fields[0]):])
	return cmd, arg
}

func (uc *HandleMessageUsecase) handleCreate(ctx context.Context, userID, title string) (string, error) {
	if title == "" {
		return "Format: #habit <judul>, contoh: #habit Lari pagi", nil
	}

	existing, err := uc.habits.FindHabitByTitle(ctx, userID, title)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return fmt.Sprintf("Habit \"%s\" sudah ada. Langsung #checkin %s aja 😉", existing.Title, existing.Title), nil
	}

	habit, err := uc.create.Execute(ctx, userID, HabitInput{Title: title})
	if errors.Is(err, domain.ErrInvalidHabit) {
		return fmt.Sprintf("Habit tidak valid: %v", err), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Habit \"%s\" dibuat ✅. Ketik #checkin %s setiap hari untuk menjaga streak 🔥", habit.Title, habit.Title), nil
}

// handleCheckIn resolves the habit by title. With loose matching (#lapor) the
// trailing text may be a free-form note, so a single habit is used when the
// title does not match.
func (uc *HandleMessageUsecase) handleCheckIn(ctx context.Context, userID, name, title string, loose bool) (string, error) {
	habit, reply, err := uc.resolveHabit(ctx, userID, title, loose)
	if err != nil || habit == nil {
		return reply, err
	}

	res, err := uc.checkIn.Execute(ctx, habit.ID, userID, uc.today())
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Sprintf("Habit \"%s\" tidak ditemukan.", habit.Title), nil
	}
	if err != nil {
		return "", err
	}

	if res.Duplicate {
		return fmt.Sprintf("%s sudah checkin \"%s\" hari ini, ayo jangan curang! 😉", name, habit.Title), nil
	}
	return fmt.Sprintf("Checkin diterima, %s sudah %d hari berturut-turut \"%s\". Lanjutkan 🔥", name, res.Stats.CurrentStreak, habit.Title), nil
}

func (uc *HandleMessageUsecase) handleDelete(ctx context.Context, userID, title string) (string, error) {
	if title == "" {
		return "Format: #hapus <judul>", nil
	}
	habit, err := uc.habits.FindHabitByTitle(ctx, userID, title)
	if err != nil {
		return "", err
	}
	if habit == nil {
		return notFoundReply(title), nil
	}

	err = uc.delete.Execute(ctx, habit.ID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return notFoundReply(title), nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Habit \"%s\" dihapus beserta semua riwayat checkin-nya.", habit.Title), nil
}

// resolveHabit returns either a habit or a reply explaining why none was
// picked.
func (uc *HandleMessageUsecase) resolveHabit(ctx context.Context, userID, title string, loose bool) (*domain.Habit, string, error) {
	if title != "" {
		habit, err := uc.habits.FindHabitByTitle(ctx, userID, title)
		if err != nil {
			return nil, "", err
		}
		if habit != nil {
			return habit, "", nil
		}
		if !loose {
			return nil, notFoundReply(title), nil
		}
	}

	habits, err := uc.habits.ListHabits(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	switch len(habits) {
	case 0:
		return nil, "Kamu belum punya habit. Buat dulu dengan #habit <judul>", nil
	case 1:
		return habits[0], "", nil
	}

	sb := strings.Builder{}
	sb.WriteString("Kamu punya beberapa habit, sebutkan judulnya: #checkin <judul>\n")
	for _, h := range habits {
		sb.WriteString("- " + h.Title + "\n")
	}
	return nil, strings.TrimRight(sb.String(), "\n"), nil
}

func notFoundReply(title string) string {
	return fmt.Sprintf("Habit \"%s\" tidak ditemukan. Ketik #stats untuk melihat daftar habit kamu.", title)
}

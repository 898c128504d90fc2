package usecase

import "github.com/fardannozami/habit-streak/internal/domain"

// Usecases wires every use case over one store. They share one set of habit
// locks so a check-in, a recompute and a delete of the same habit never
// overlap within the process.
type Usecases struct {
	CreateHabit    *CreateHabitUsecase
	UpdateHabit    *UpdateHabitUsecase
	ListHabits     *ListHabitsUsecase
	GetDashboard   *GetDashboardUsecase
	DeleteHabit    *DeleteHabitUsecase
	CheckIn        *CheckInUsecase
	GetStats       *GetStatsUsecase
	RecomputeStats *RecomputeStatsUsecase
	GetCalendar    *GetCalendarUsecase
}

func NewUsecases(store domain.Store) *Usecases {
	locks := NewHabitLocks()
	list := NewListHabitsUsecase(store)
	return &Usecases{
		CreateHabit:    NewCreateHabitUsecase(store),
		UpdateHabit:    NewUpdateHabitUsecase(store),
		ListHabits:     list,
		GetDashboard:   NewGetDashboardUsecase(list),
		DeleteHabit:    NewDeleteHabitUsecase(store, locks),
		CheckIn:        NewCheckInUsecase(store, locks),
		GetStats:       NewGetStatsUsecase(store, locks),
		RecomputeStats: NewRecomputeStatsUsecase(store, locks),
		GetCalendar:    NewGetCalendarUsecase(store),
	}
}

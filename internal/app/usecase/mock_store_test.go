package usecase_test

import (
	"context"
	"sort"
	"sync"

	"github.com/fardannozami/habit-streak/internal/domain"
)

// mockStore implements domain.Store in memory. The fail* fields inject
// errors into single operations.
type mockStore struct {
	mu          sync.Mutex
	habits      map[string]*domain.Habit
	completions map[string][]domain.Day
	stats       map[string]*domain.HabitStats

	failGet    error
	failInsert error
	failList   error
	failUpsert error
	failDelete error

	// beforeInsert runs ahead of InsertCompletion, outside the lock.
	beforeInsert func()
	// blockDays makes ListCompletionDays wait for its context to end.
	blockDays bool

	upserts int
}

func newMockStore() *mockStore {
	return &mockStore{
		habits:      make(map[string]*domain.Habit),
		completions: make(map[string][]domain.Day),
		stats:       make(map[string]*domain.HabitStats),
	}
}

func (m *mockStore) addHabit(id, userID, title string) *domain.Habit {
	h := &domain.Habit{ID: id, UserID: userID, Title: title}
	h.Normalize()
	m.mu.Lock()
	m.habits[id] = h
	m.mu.Unlock()
	return h
}

func (m *mockStore) CreateHabit(ctx context.Context, h *domain.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *h
	m.habits[h.ID] = &cp
	return nil
}

func (m *mockStore) GetHabit(ctx context.Context, id string) (*domain.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	h, ok := m.habits[id]
	if !ok {
		return nil, nil
	}
	cp := *h
	return &cp, nil
}

func (m *mockStore) FindHabitByTitle(ctx context.Context, userID, title string) (*domain.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, h := range m.habits {
		if h.UserID == userID && h.MatchesTitle(title) {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockStore) ListHabits(ctx context.Context, userID string) ([]*domain.Habit, error) {
	all, _ := m.ListAllHabits(ctx)
	var out []*domain.Habit
	for _, h := range all {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *mockStore) ListAllHabits(ctx context.Context) ([]*domain.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Habit
	for _, h := range m.habits {
		cp := *h
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *mockStore) UpdateHabit(ctx context.Context, h *domain.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.habits[h.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *h
	m.habits[h.ID] = &cp
	return nil
}

func (m *mockStore) DeleteHabitCascade(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete != nil {
		return m.failDelete
	}
	if _, ok := m.habits[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.completions, id)
	delete(m.stats, id)
	delete(m.habits, id)
	return nil
}

func (m *mockStore) InsertCompletion(ctx context.Context, c *domain.Completion) (bool, error) {
	if m.beforeInsert != nil {
		m.beforeInsert()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failInsert != nil {
		return false, m.failInsert
	}
	for _, d := range m.completions[c.HabitID] {
		if d.Equal(c.CompletionDate) {
			return false, nil
		}
	}
	m.completions[c.HabitID] = append(m.completions[c.HabitID], c.CompletionDate)
	return true, nil
}

func (m *mockStore) ListCompletionDays(ctx context.Context, habitID string) ([]domain.Day, error) {
	if m.blockDays {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList != nil {
		return nil, m.failList
	}
	return append([]domain.Day(nil), m.completions[habitID]...), nil
}

func (m *mockStore) GetStats(ctx context.Context, habitID string) (*domain.HabitStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.stats[habitID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (m *mockStore) UpsertStats(ctx context.Context, st *domain.HabitStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpsert != nil {
		return m.failUpsert
	}
	m.upserts++
	cp := *st
	m.stats[st.HabitID] = &cp
	return nil
}

func (m *mockStore) DeleteStats(ctx context.Context, habitID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stats, habitID)
	return nil
}

func day(s string) domain.Day {
	d, err := domain.ParseDay(s)
	if err != nil {
		panic(err)
	}
	return d
}

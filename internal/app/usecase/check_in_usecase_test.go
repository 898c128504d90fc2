package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fardannozami/habit-streak/internal/app/usecase"
	"github.com/fardannozami/habit-streak/internal/domain"
)

// =============================================================================
// CHECK-IN TESTS
// =============================================================================
//
// Check-in Rules:
// 1. Unknown habit → ErrNotFound; someone else's habit → ErrUnauthorized
// 2. First check-in for a day → one completion, stats recomputed and saved
// 3. Same day again → no new completion, stats returned unchanged (Duplicate)
// 4. Insert failure → ErrStoreUnavailable, stats untouched
// 5. Stats upsert failure → check-in still succeeds with computed stats
//
// =============================================================================

func TestCheckIn_FirstCheckIn(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	uc := usecase.NewCheckInUsecase(store, usecase.NewHabitLocks())

	res, err := uc.Execute(context.Background(), "h1", "user1", day("2024-01-01"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Duplicate {
		t.Error("First check-in should not be a duplicate")
	}
	if res.Stats.CurrentStreak != 1 || res.Stats.MaxStreak != 1 || res.Stats.SuccessRate != 1.0 {
		t.Errorf("Expected 1/1/1.0, got %+v", res.Stats)
	}
	if res.Stats.LastCompletionDate.String() != "2024-01-01" {
		t.Errorf("LastCompletionDate: expected 2024-01-01, got %s", res.Stats.LastCompletionDate)
	}
	if store.stats["h1"] == nil {
		t.Error("Stats should have been saved")
	}
}

func TestCheckIn_ConsecutiveDays(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	uc := usecase.NewCheckInUsecase(store, nil)
	ctx := context.Background()

	var res *usecase.CheckInResult
	var err error
	for _, d := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		res, err = uc.Execute(ctx, "h1", "user1", day(d))
		if err != nil {
			t.Fatalf("Check-in %s failed: %v", d, err)
		}
	}

	if res.Stats.CurrentStreak != 3 || res.Stats.MaxStreak != 3 || res.Stats.SuccessRate != 1.0 {
		t.Errorf("Expected 3/3/1.0, got %+v", res.Stats)
	}
}

func TestCheckIn_GapResetsCurrent(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	uc := usecase.NewCheckInUsecase(store, nil)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, "h1", "user1", day("2024-01-01")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	res, err := uc.Execute(ctx, "h1", "user1", day("2024-01-03"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if res.Stats.CurrentStreak != 1 || res.Stats.MaxStreak != 1 {
		t.Errorf("Expected 1/1, got %+v", res.Stats)
	}
	if want := 2.0 / 3.0; res.Stats.SuccessRate != want {
		t.Errorf("SuccessRate: expected %v, got %v", want, res.Stats.SuccessRate)
	}
}

func TestCheckIn_SameDayTwice_Idempotent(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	uc := usecase.NewCheckInUsecase(store, nil)
	ctx := context.Background()

	first, err := uc.Execute(ctx, "h1", "user1", day("2024-01-01"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	upsertsAfterFirst := store.upserts

	second, err := uc.Execute(ctx, "h1", "user1", day("2024-01-01"))
	if err != nil {
		t.Fatalf("Duplicate check-in should succeed: %v", err)
	}
	if !second.Duplicate {
		t.Error("Second check-in should be flagged Duplicate")
	}
	if len(store.completions["h1"]) != 1 {
		t.Errorf("Expected exactly 1 completion, got %d", len(store.completions["h1"]))
	}
	if store.upserts != upsertsAfterFirst {
		t.Error("Duplicate check-in should not recompute stats")
	}
	if second.Stats.CurrentStreak != first.Stats.CurrentStreak ||
		second.Stats.MaxStreak != first.Stats.MaxStreak ||
		second.Stats.SuccessRate != first.Stats.SuccessRate {
		t.Errorf("Stats changed: %+v vs %+v", first.Stats, second.Stats)
	}
}

func TestCheckIn_DuplicateWithMissingStats_Rebuilds(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	store.completions["h1"] = []domain.Day{day("2024-01-01"), day("2024-01-02")}
	uc := usecase.NewCheckInUsecase(store, nil)

	res, err := uc.Execute(context.Background(), "h1", "user1", day("2024-01-02"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !res.Duplicate {
		t.Error("Expected Duplicate")
	}
	if res.Stats.CurrentStreak != 2 {
		t.Errorf("Expected rebuilt CurrentStreak=2, got %d", res.Stats.CurrentStreak)
	}
	if store.stats["h1"] == nil {
		t.Error("Missing stats should have been rebuilt and saved")
	}
}

func TestCheckIn_NotFound(t *testing.T) {
	store := newMockStore()
	uc := usecase.NewCheckInUsecase(store, nil)

	_, err := uc.Execute(context.Background(), "missing", "user1", day("2024-01-01"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCheckIn_Unauthorized(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "owner", "Read")
	uc := usecase.NewCheckInUsecase(store, nil)

	_, err := uc.Execute(context.Background(), "h1", "intruder", day("2024-01-01"))
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
	if len(store.completions["h1"]) != 0 {
		t.Error("Unauthorized check-in must not write a completion")
	}
}

func TestCheckIn_ZeroDayRejected(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	uc := usecase.NewCheckInUsecase(store, nil)

	_, err := uc.Execute(context.Background(), "h1", "user1", domain.Day{})
	if !errors.Is(err, domain.ErrInvalidHabit) {
		t.Errorf("Expected ErrInvalidHabit, got %v", err)
	}
}

func TestCheckIn_InsertFailure_StoreUnavailable(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	store.failInsert = errors.New("disk I/O error")
	uc := usecase.NewCheckInUsecase(store, nil)

	_, err := uc.Execute(context.Background(), "h1", "user1", day("2024-01-01"))
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable, got %v", err)
	}
	if !domain.IsRetryable(err) {
		t.Error("Insert failure should be retryable")
	}
	if store.stats["h1"] != nil {
		t.Error("Stats must stay untouched after a failed insert")
	}
}

func TestCheckIn_HabitDeletedBeforeInsert_NotFound(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	store.beforeInsert = func() {
		_ = store.DeleteHabitCascade(context.Background(), "h1")
	}
	store.failInsert = errors.New("FOREIGN KEY constraint failed (787)")
	uc := usecase.NewCheckInUsecase(store, nil)

	_, err := uc.Execute(context.Background(), "h1", "user1", day("2024-01-01"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if domain.IsRetryable(err) {
		t.Error("A deleted habit must not look retryable")
	}
	if len(store.completions["h1"]) != 0 {
		t.Error("No completion may remain for a deleted habit")
	}
}

func TestCheckIn_StoreDuplicateErrorTreatedAsSuccess(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	store.stats["h1"] = &domain.HabitStats{HabitID: "h1", CurrentStreak: 4, MaxStreak: 9}
	store.failInsert = domain.ErrDuplicateCompletion
	uc := usecase.NewCheckInUsecase(store, nil)

	res, err := uc.Execute(context.Background(), "h1", "user1", day("2024-01-01"))
	if err != nil {
		t.Fatalf("Duplicate error should be swallowed: %v", err)
	}
	if !res.Duplicate || res.Stats.CurrentStreak != 4 || res.Stats.MaxStreak != 9 {
		t.Errorf("Expected existing stats returned as duplicate, got %+v", res)
	}
}

func TestCheckIn_UpsertFailure_StillSucceeds(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	store.failUpsert = errors.New("connection reset")
	uc := usecase.NewCheckInUsecase(store, nil)

	res, err := uc.Execute(context.Background(), "h1", "user1", day("2024-01-01"))
	if err != nil {
		t.Fatalf("Upsert failure should not fail the check-in: %v", err)
	}
	if res.Stats.CurrentStreak != 1 {
		t.Errorf("Expected computed stats, got %+v", res.Stats)
	}
	if len(store.completions["h1"]) != 1 {
		t.Error("Completion should be recorded")
	}

	// The next check-in heals the cache
	store.failUpsert = nil
	res, err = uc.Execute(context.Background(), "h1", "user1", day("2024-01-02"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := store.stats["h1"]; got == nil || got.CurrentStreak != 2 {
		t.Errorf("Stats should be healed to streak 2, got %+v", got)
	}
}

func TestCheckIn_ListFailureAfterInsert(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	store.failList = errors.New("timeout")
	uc := usecase.NewCheckInUsecase(store, nil)

	_, err := uc.Execute(context.Background(), "h1", "user1", day("2024-01-01"))
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Errorf("Expected ErrStoreUnavailable, got %v", err)
	}
}

func TestCheckIn_DuplicateDaysInLog_InvariantViolation(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	// A store without the unique constraint could end up like this
	store.completions["h1"] = []domain.Day{day("2024-01-01"), day("2024-01-01")}
	uc := usecase.NewCheckInUsecase(store, nil)

	_, err := uc.Execute(context.Background(), "h1", "user1", day("2024-01-02"))
	if !errors.Is(err, domain.ErrInvariantViolation) {
		t.Errorf("Expected ErrInvariantViolation, got %v", err)
	}
}

func TestCheckIn_ConcurrentSameDay(t *testing.T) {
	store := newMockStore()
	store.addHabit("h1", "user1", "Read")
	uc := usecase.NewCheckInUsecase(store, usecase.NewHabitLocks())

	var wg sync.WaitGroup
	var mu sync.Mutex
	fresh := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := uc.Execute(context.Background(), "h1", "user1", day("2024-01-01"))
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if !res.Duplicate {
				mu.Lock()
				fresh++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if fresh != 1 {
		t.Errorf("Expected exactly one non-duplicate check-in, got %d", fresh)
	}
	if len(store.completions["h1"]) != 1 {
		t.Errorf("Expected 1 completion, got %d", len(store.completions["h1"]))
	}
}

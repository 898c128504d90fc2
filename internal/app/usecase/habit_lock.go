package usecase

import "sync"

// HabitLocks serializes stats rebuilds per habit. Different habits never
// contend. The zero value is ready to use.
type HabitLocks struct {
	mu    sync.Mutex
	locks map[string]*habitLock
}

type habitLock struct {
	mu   sync.Mutex
	refs int
}

func NewHabitLocks() *HabitLocks {
	return &HabitLocks{}
}

// Lock blocks until habitID is free and returns the unlock func.
func (l *HabitLocks) Lock(habitID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*habitLock)
	}
	hl, ok := l.locks[habitID]
	if !ok {
		hl = &habitLock{}
		l.locks[habitID] = hl
	}
	hl.refs++
	l.mu.Unlock()

	hl.mu.Lock()
	return func() {
		hl.mu.Unlock()

		l.mu.Lock()
		hl.refs--
		if hl.refs == 0 {
			delete(l.locks, habitID)
		}
		l.mu.Unlock()
	}
}

func (l *HabitLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

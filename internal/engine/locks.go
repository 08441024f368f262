package engine

import "sync"

// LockManager hands out one mutex per (portfolio, symbol) pair. The executor
// holds that mutex across its whole validate-and-commit pass so concurrent
// trades on the same holding serialize instead of racing the sufficiency
// check.
type LockManager struct {
	mu    sync.RWMutex
	locks map[string]*sync.Mutex
}

// NewLockManager creates a new LockManager.
func NewLockManager() *LockManager {
	return &LockManager{
		locks: make(map[string]*sync.Mutex),
	}
}

// Get returns the mutex for the given (portfolio, symbol) pair, creating
// one if it doesn't already exist.
func (m *LockManager) Get(portfolioID, symbol string) *sync.Mutex {
	key := portfolioID + "\x00" + symbol

	m.mu.RLock()
	lock, ok := m.locks[key]
	m.mu.RUnlock()
	if ok {
		return lock
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Double-check after acquiring write lock.
	if lock, ok = m.locks[key]; ok {
		return lock
	}
	lock = &sync.Mutex{}
	m.locks[key] = lock
	return lock
}

// FILE: internal/server/service/locks.go
package service

import "sync"

// lockTable hands out one mutex per competitor id. Holding the lock is the
// "exclusive access to record X" primitive: submissions for the same
// competitor serialize on it for the whole atomic unit, submissions for
// different competitors never contend here. Entries are reference counted so
// the table does not grow with the competitor population.
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{
		locks: make(map[string]*lockEntry),
	}
}

// Lock acquires the lock for key and returns its release function
func (t *lockTable) Lock(key string) (unlock func()) {
	t.mu.Lock()
	entry, ok := t.locks[key]
	if !ok {
		entry = &lockEntry{}
		t.locks[key] = entry
	}
	entry.refs++
	t.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		t.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(t.locks, key)
		}
		t.mu.Unlock()
	}
}

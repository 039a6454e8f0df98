package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLockTableMutualExclusion(t *testing.T) {
	table := newLockTable()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := table.Lock("alice")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, 100, counter)
}

func TestLockTableIndependentKeys(t *testing.T) {
	table := newLockTable()

	// Holding one key must not block another
	unlockA := table.Lock("alice")
	done := make(chan struct{})
	go func() {
		unlock := table.Lock("bob")
		unlock()
		close(done)
	}()
	<-done
	unlockA()
}

func TestLockTableReleasesEntries(t *testing.T) {
	table := newLockTable()

	unlock := table.Lock("alice")
	unlock()

	table.mu.Lock()
	defer table.mu.Unlock()
	require.Empty(t, table.locks)
}

func TestLockTableConcurrentChurn(t *testing.T) {
	table := newLockTable()

	var wg sync.WaitGroup
	keys := []string{"a", "b", "c"}
	for i := 0; i < 50; i++ {
		for _, key := range keys {
			wg.Add(1)
			go func(k string) {
				defer wg.Done()
				unlock := table.Lock(k)
				unlock()
			}(key)
		}
	}
	wg.Wait()

	table.mu.Lock()
	defer table.mu.Unlock()
	require.Empty(t, table.locks)
}

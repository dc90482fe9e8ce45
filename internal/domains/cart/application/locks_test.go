package application

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLockTable_SerializesSameOrder(t *testing.T) {
	table := NewLockTable()
	var wg sync.WaitGroup
	counter := 0
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := table.Acquire(1)
			defer release()
			counter++
		}()
	}
	wg.Wait()
	require.Equal(t, 50, counter)
}

func TestLockTable_IndependentOrdersDoNotBlock(t *testing.T) {
	table := NewLockTable()
	releaseOne := table.Acquire(1)
	defer releaseOne()

	done := make(chan struct{})
	go func() {
		release := table.Acquire(2)
		release()
		close(done)
	}()
	<-done
}

func TestLockTable_EntryDroppedAfterRelease(t *testing.T) {
	table := NewLockTable()
	release := table.Acquire(1)
	release()
	require.Empty(t, table.locks)
}

func TestLockTable_NilSafe(t *testing.T) {
	var table *LockTable
	release := table.Acquire(1)
	release()
}

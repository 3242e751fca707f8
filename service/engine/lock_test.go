package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockTable(t *testing.T) {
	table := newLockTable()
	unlock := table.lock("1")
	assert.Equal(t, 1, table.size())

	acquired := make(chan struct{})
	go func() {
		release := table.lock("1")
		close(acquired)
		release()
	}()
	select {
	case <-acquired:
		t.Fatal("second lock acquired while held")
	case <-time.After(20 * time.Millisecond):
	}

	other := table.lock("2")
	other()
	unlock()
	<-acquired

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			table.lock("3")()
		}()
	}
	wg.Wait()
	assert.Eventually(t, func() bool { return table.size() == 0 }, time.Second, time.Millisecond)
}

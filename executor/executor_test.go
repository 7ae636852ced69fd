package executor

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteRunsTasksInOrder(t *testing.T) {
	e := New("test")
	e.Start()
	defer e.Close()

	var mu sync.Mutex
	var got []int
	var wg sync.WaitGroup
	wg.Add(10)
	for i := 0; i < 10; i++ {
		i := i
		require.True(t, e.Execute(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			wg.Done()
		}))
	}
	wg.Wait()
	//
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestExecuteBeforeStart(t *testing.T) {
	e := New("test")
	assert.False(t, e.Execute(func() {}))
}

func TestExecuteAfterClose(t *testing.T) {
	e := New("test")
	e.Start()
	e.Close()
	assert.False(t, e.Execute(func() {}))

	// closing twice is safe
	e.Close()
}

func TestExecuteNilTask(t *testing.T) {
	e := New("test")
	e.Start()
	defer e.Close()
	assert.False(t, e.Execute(nil))
}

func TestPanicDoesNotKillLoop(t *testing.T) {
	e := New("test")
	e.Start()
	defer e.Close()

	done := make(chan struct{})
	require.True(t, e.Execute(func() { panic("kaboom") }))
	require.True(t, e.Execute(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("executor loop died after panic")
	}
}

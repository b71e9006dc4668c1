package concurrency

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/speedcore/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoundedQueue_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -1024} {
		q, err := NewBoundedQueue[int](capacity)
		assert.Nil(t, q)
		require.ErrorIs(t, err, api.ErrInvalidCapacity)
		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, api.ErrCodeInvalidCapacity, apiErr.Code)
		assert.Equal(t, capacity, apiErr.Context["capacity"])
	}
}

func TestBoundedQueue_FIFO_SingleProducerSingleConsumer(t *testing.T) {
	for _, capacity := range []int{1, 2, 3, 7, 64} {
		q, err := NewBoundedQueue[int](capacity)
		require.NoError(t, err)
		require.Equal(t, capacity, q.Cap())

		const n = 1000
		go func() {
			for i := 0; i < n; i++ {
				q.Push(i)
			}
		}()
		for i := 0; i < n; i++ {
			if got := q.Pop(); got != i {
				t.Fatalf("capacity %d: pop %d returned %d", capacity, i, got)
			}
		}
		assert.Equal(t, 0, q.Len())
	}
}

func TestBoundedQueue_WrapAround(t *testing.T) {
	q, err := NewBoundedQueue[string](3)
	require.NoError(t, err)
	for round := 0; round < 5; round++ {
		require.True(t, q.TryPush("a"))
		require.True(t, q.TryPush("b"))
		require.True(t, q.TryPush("c"))
		require.False(t, q.TryPush("d"))
		assert.Equal(t, 3, q.Len())
		for _, want := range []string{"a", "b", "c"} {
			got, ok := q.TryPop()
			require.True(t, ok)
			require.Equal(t, want, got)
		}
		_, ok := q.TryPop()
		require.False(t, ok)
	}
}

func TestBoundedQueue_MPMC_NoLossNoDuplication(t *testing.T) {
	q, err := NewBoundedQueue[int](16)
	require.NoError(t, err)

	const producers, consumers, perProducer = 8, 6, 5000
	total := producers * perProducer

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(pid int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(pid*perProducer + i)
			}
		}(p)
	}

	var (
		mu       sync.Mutex
		received = make([]int, 0, total)
		taken    atomic.Int64
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var cwg sync.WaitGroup
	for c := 0; c < consumers; c++ {
		cwg.Add(1)
		go func() {
			defer cwg.Done()
			local := make([]int, 0, total/consumers)
			defer func() {
				mu.Lock()
				received = append(received, local...)
				mu.Unlock()
			}()
			for {
				v, err := q.PopContext(ctx)
				if err != nil {
					return
				}
				local = append(local, v)
				if taken.Add(1) == int64(total) {
					cancel()
				}
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		cwg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("timeout waiting for consumers, received %d/%d", taken.Load(), total)
	}

	require.Len(t, received, total)
	sort.Ints(received)
	for i, v := range received {
		if v != i {
			t.Fatalf("item %d missing or duplicated (found %d)", i, v)
		}
	}
}

func TestBoundedQueue_PerProducerOrderPreserved(t *testing.T) {
	q, err := NewBoundedQueue[[2]int](4)
	require.NoError(t, err)

	const producers, perProducer = 4, 2000
	for p := 0; p < producers; p++ {
		go func(pid int) {
			for i := 0; i < perProducer; i++ {
				q.Push([2]int{pid, i})
			}
		}(p)
	}
	next := make([]int, producers)
	for n := 0; n < producers*perProducer; n++ {
		item := q.Pop()
		require.Equal(t, next[item[0]], item[1], "producer %d overtaken", item[0])
		next[item[0]]++
	}
}

func TestBoundedQueue_PushBlocksWhenFull(t *testing.T) {
	q, err := NewBoundedQueue[int](1)
	require.NoError(t, err)
	q.Push(1)

	pushed := make(chan struct{})
	go func() {
		q.Push(2)
		close(pushed)
	}()

	select {
	case <-pushed:
		t.Fatal("second push returned before any pop")
	case <-time.After(50 * time.Millisecond):
	}

	assert.Equal(t, 1, q.Pop())
	select {
	case <-pushed:
	case <-time.After(5 * time.Second):
		t.Fatal("push did not resume after pop")
	}
	assert.Equal(t, 2, q.Pop())
}

func TestBoundedQueue_PopBlocksWhenEmpty(t *testing.T) {
	q, err := NewBoundedQueue[int](1)
	require.NoError(t, err)

	got := make(chan int, 1)
	go func() { got <- q.Pop() }()

	select {
	case v := <-got:
		t.Fatalf("pop returned %d from an empty queue", v)
	case <-time.After(50 * time.Millisecond):
	}

	q.Push(7)
	select {
	case v := <-got:
		assert.Equal(t, 7, v)
	case <-time.After(5 * time.Second):
		t.Fatal("pop did not resume after push")
	}
}

func TestBoundedQueue_PopContextCancelled(t *testing.T) {
	q, err := NewBoundedQueue[int](2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := q.PopContext(ctx)
		errCh <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("PopContext ignored cancellation")
	}

	// the queue stays usable and nothing was consumed
	q.Push(3)
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 3, q.Pop())
}

func TestBoundedQueue_PushContextDeadline(t *testing.T) {
	q, err := NewBoundedQueue[int](1)
	require.NoError(t, err)
	q.Push(1)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	err = q.PushContext(ctx, 2)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 1, q.Pop())
}

func TestBoundedQueue_ContextAlreadyDone(t *testing.T) {
	q, err := NewBoundedQueue[int](1)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, q.PushContext(ctx, 1), context.Canceled)
	_, err = q.PopContext(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, q.Len())
}

// A cancelled waiter must not swallow the wakeup meant for another one.
func TestBoundedQueue_CancelledWaiterDoesNotLoseSignal(t *testing.T) {
	q, err := NewBoundedQueue[int](1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancelled := make(chan error, 1)
	go func() {
		_, err := q.PopContext(ctx)
		cancelled <- err
	}()
	got := make(chan int, 1)
	go func() { got <- q.Pop() }()

	time.Sleep(20 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-cancelled, context.Canceled)

	q.Push(42)
	select {
	case v := <-got:
		assert.Equal(t, 42, v)
	case <-time.After(5 * time.Second):
		t.Fatal("blocked consumer never received the item")
	}
}

func BenchmarkBoundedQueue_PushPop(b *testing.B) {
	q, err := NewBoundedQueue[int](1000)
	if err != nil {
		b.Fatal(err)
	}
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			q.Push(1)
			q.Pop()
		}
	})
}

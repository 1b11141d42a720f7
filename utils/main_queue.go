package utils

import (
	"context"
	"sync"
)

// MainQueue is the single execution context that owns every buffer and
// status value. Sensor goroutines and HTTP completions hand work to it with
// Async; callers that need a result use Sync.
//
// The pending list is unbounded so Async never blocks. A source goroutine
// can therefore always finish a delivery even while the queue is busy
// cancelling that same source.
type MainQueue struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
	done    chan struct{}
	started bool
	closed  bool
}

func NewMainQueue() *MainQueue {
	return &MainQueue{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Start launches the queue goroutine. It runs until ctx ends or Stop is called,
// then executes whatever is still pending and exits.
func (q *MainQueue) Start(ctx context.Context) {
	q.mu.Lock()
	if q.started {
		q.mu.Unlock()
		return
	}
	q.started = true
	q.mu.Unlock()

	go q.run(ctx)
}

// Async schedules fn. Work submitted after Stop is dropped.
func (q *MainQueue) Async(fn func()) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Sync runs fn on the queue and waits for it. It returns false if the queue
// stopped before fn could run. Never call Sync from inside queued work.
func (q *MainQueue) Sync(fn func()) bool {
	ran := make(chan struct{})
	q.Async(func() {
		fn()
		close(ran)
	})
	select {
	case <-ran:
		return true
	case <-q.done:
		// fn may have been the last item drained on the way out.
		select {
		case <-ran:
			return true
		default:
			return false
		}
	}
}

// Stop closes the queue to new work and waits for the drain to finish.
func (q *MainQueue) Stop() {
	q.mu.Lock()
	wasStarted := q.started
	alreadyClosed := q.closed
	q.started = true
	q.closed = true
	q.mu.Unlock()

	if !wasStarted {
		if !alreadyClosed {
			close(q.done)
		}
		return
	}
	select {
	case q.wake <- struct{}{}:
	default:
	}
	<-q.done
}

// Done is closed once the queue goroutine has exited.
func (q *MainQueue) Done() <-chan struct{} {
	return q.done
}

func (q *MainQueue) run(ctx context.Context) {
	defer close(q.done)

	for {
		batch, closed := q.take()
		for _, fn := range batch {
			fn()
		}
		if closed {
			// drain anything queued before close landed
			rest, _ := q.take()
			for _, fn := range rest {
				fn()
			}
			return
		}
		if len(batch) > 0 {
			continue
		}

		select {
		case <-ctx.Done():
			q.mu.Lock()
			q.closed = true
			q.mu.Unlock()
		case <-q.wake:
		}
	}
}

func (q *MainQueue) take() ([]func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	batch := q.pending
	q.pending = nil
	return batch, q.closed
}

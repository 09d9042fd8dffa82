package report

import (
	"io"
	"sync"
	"sync/atomic"
)

// DefaultQueue is the Async buffer size used when none is given.
const DefaultQueue = 64

type reading struct {
	id          string
	left, right float64
}

// Async decouples a reporter from the caller. Report never blocks: readings
// are queued and delivered by a background goroutine, and dropped when the
// queue is full.
type Async struct {
	next    Reporter
	queue   chan reading
	done    chan struct{}
	dropped atomic.Uint64

	mu     sync.RWMutex
	closed bool
}

// NewAsync starts delivering to next. A non-positive size selects
// DefaultQueue.
func NewAsync(next Reporter, size int) *Async {
	if size <= 0 {
		size = DefaultQueue
	}

	a := &Async{
		next:  next,
		queue: make(chan reading, size),
		done:  make(chan struct{}),
	}

	go a.run()

	return a
}

func (a *Async) run() {
	defer close(a.done)

	for r := range a.queue {
		a.next.Report(r.id, r.left, r.right)
	}
}

// Report queues a reading, or drops it when the queue is full or the
// reporter is closed.
func (a *Async) Report(id string, left, right float64) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		a.dropped.Add(1)
		return
	}

	select {
	case a.queue <- reading{id: id, left: left, right: right}:
	default:
		a.dropped.Add(1)
	}
}

// Dropped returns the number of readings that were not queued.
func (a *Async) Dropped() uint64 { return a.dropped.Load() }

// Close delivers the queued readings, then closes the wrapped reporter if it
// implements io.Closer. It is safe to call more than once.
func (a *Async) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}

	a.closed = true
	close(a.queue)
	a.mu.Unlock()

	<-a.done

	if c, ok := a.next.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

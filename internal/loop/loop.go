// Package loop provides the single logical thread that every client session
// runs on. All state mutations, event handlers, timers and completions of
// asynchronous I/O are executed serially by Run, so the callbacks may touch
// session state without synchronization.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned by Do when the loop is no longer running.
var ErrStopped = errors.New("loop stopped")

// Loop is a serial callback executor.
type Loop struct {
	mu      sync.Mutex
	pending []task
	stopped bool
	wakeCh  chan struct{}
	doneCh  chan struct{}
	once    sync.Once

	inflightMu sync.Mutex
	inflight   int
	idleCh     chan struct{}
}

// task is a queued callback. Tracked tasks are continuations of Go work and
// hold an inflight count until they run or the loop stops.
type task struct {
	fn      func()
	tracked bool
}

// New creates a Loop. Callbacks posted before Run are queued.
func New() *Loop {
	return &Loop{
		wakeCh: make(chan struct{}, 1),
		doneCh: make(chan struct{}),
	}
}

// Post queues fn to run on the loop. It never blocks. Callbacks posted after
// the loop has stopped are dropped.
func (l *Loop) Post(fn func()) {
	l.post(task{fn: fn})
}

func (l *Loop) post(t task) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		if t.tracked {
			l.release()
		}
		return
	}
	l.pending = append(l.pending, t)
	l.mu.Unlock()
	select {
	case l.wakeCh <- struct{}{}:
	default:
	}
}

// Do posts fn and waits until it has run. It must not be called from the
// loop itself.
func (l *Loop) Do(fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-l.doneCh:
		select {
		case <-done:
			return nil
		default:
			return ErrStopped
		}
	}
}

// Go runs work on its own goroutine and posts the continuation it returns
// back to the loop. A nil continuation is allowed. Work started with Go is
// not cancellable; Wait blocks until every continuation has run. If the
// loop stops first the continuation is discarded.
func (l *Loop) Go(work func() func()) {
	l.inflightMu.Lock()
	if l.inflight == 0 {
		l.idleCh = make(chan struct{})
	}
	l.inflight++
	l.inflightMu.Unlock()

	go func() {
		cont := work()
		l.post(task{tracked: true, fn: func() {
			defer l.release()
			if cont != nil {
				cont()
			}
		}})
	}()
}

func (l *Loop) release() {
	l.inflightMu.Lock()
	l.inflight--
	if l.inflight == 0 {
		close(l.idleCh)
		l.idleCh = nil
	}
	l.inflightMu.Unlock()
}

// Wait blocks until no work started with Go is outstanding, or until the
// loop has stopped. Timers are not tracked.
func (l *Loop) Wait() {
	for {
		l.inflightMu.Lock()
		if l.inflight == 0 {
			l.inflightMu.Unlock()
			return
		}
		idle := l.idleCh
		l.inflightMu.Unlock()

		select {
		case <-idle:
		case <-l.doneCh:
			return
		}
	}
}

// AfterFunc runs fn on the loop once d has elapsed.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.Post(fn) })
}

// Every runs fn on the loop each time d elapses, until the returned stop
// function is called.
func (l *Loop) Every(d time.Duration, fn func()) (stop func()) {
	ticker := time.NewTicker(d)
	quit := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				l.Post(fn)
			case <-quit:
				ticker.Stop()
				return
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(quit) }) }
}

// Run executes posted callbacks until ctx is done. It is fully serial.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()
	for {
		for _, t := range l.drain() {
			t.fn()
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wakeCh:
		}
	}
}

func (l *Loop) drain() []task {
	l.mu.Lock()
	defer l.mu.Unlock()
	tasks := l.pending
	l.pending = nil
	return tasks
}

// stop refuses further callbacks and releases the inflight count of
// continuations that will never run.
func (l *Loop) stop() {
	l.mu.Lock()
	l.stopped = true
	left := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, t := range left {
		if t.tracked {
			l.release()
		}
	}
	l.once.Do(func() { close(l.doneCh) })
}

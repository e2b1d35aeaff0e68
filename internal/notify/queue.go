package notify

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scheduler runs fn once d has elapsed, on the same logical thread as the
// queue's callers.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

// Queue holds the active toasts. Toasts coexist independently; there is no
// deduplication and no stacking limit.
type Queue struct {
	sched     Scheduler
	timing    Timing
	log       *zap.Logger
	toasts    []*Toast
	listeners []func(Toast)
}

// Option configures a Queue.
type Option func(*Queue)

// WithTiming overrides DefaultTiming.
func WithTiming(t Timing) Option {
	return func(q *Queue) { q.timing = t }
}

// WithLogger logs every enqueued toast at debug level.
func WithLogger(log *zap.Logger) Option {
	return func(q *Queue) { q.log = log }
}

// NewQueue creates an empty queue.
func NewQueue(sched Scheduler, opts ...Option) *Queue {
	q := &Queue{sched: sched, timing: DefaultTiming, log: zap.NewNop()}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// OnChange registers fn to be called after every phase transition, including
// the initial Invisible one.
func (q *Queue) OnChange(fn func(Toast)) {
	q.listeners = append(q.listeners, fn)
}

// Enqueue appends a toast and schedules its lifecycle. It returns the toast
// ID.
func (q *Queue) Enqueue(message string, kind Kind) string {
	t := &Toast{
		ID:        uuid.New().String(),
		Message:   message,
		Kind:      kind,
		Phase:     Invisible,
		CreatedAt: time.Now(),
	}
	q.toasts = append(q.toasts, t)
	q.log.Debug("toast", zap.String("kind", string(kind)), zap.String("message", message))
	q.emit(t)

	q.sched.AfterFunc(q.timing.ShowDelay, func() {
		q.advance(t, Visible)
		q.sched.AfterFunc(q.timing.Dwell, func() {
			q.advance(t, Hidden)
			q.sched.AfterFunc(q.timing.ExitDelay, func() {
				q.remove(t)
			})
		})
	})
	return t.ID
}

// Active returns copies of the toasts not yet removed, oldest first.
func (q *Queue) Active() []Toast {
	out := make([]Toast, 0, len(q.toasts))
	for _, t := range q.toasts {
		out = append(out, *t)
	}
	return out
}

func (q *Queue) advance(t *Toast, p Phase) {
	t.Phase = p
	q.emit(t)
}

func (q *Queue) remove(t *Toast) {
	for i, x := range q.toasts {
		if x == t {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			break
		}
	}
	q.advance(t, Removed)
}

func (q *Queue) emit(t *Toast) {
	for _, fn := range q.listeners {
		fn(*t)
	}
}

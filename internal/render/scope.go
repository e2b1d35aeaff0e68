package render

import "github.com/ziadkadry99/diana/internal/state"

// Scope lives as long as one rendered page. Subscriptions made through it
// are cancelled and exit hooks run when the page is replaced.
type Scope struct {
	store  *state.Store
	subs   []*state.Subscription
	exits  []func()
	closed bool
}

func newScope(store *state.Store) *Scope {
	return &Scope{store: store}
}

// Subscribe registers fn on the store for the page's lifetime.
func (s *Scope) Subscribe(fn func(*state.Store)) *state.Subscription {
	sub := s.store.Subscribe(fn)
	s.subs = append(s.subs, sub)
	return sub
}

// OnExit registers fn to run when the page is replaced.
func (s *Scope) OnExit(fn func()) {
	s.exits = append(s.exits, fn)
}

// Closed reports whether the page has been replaced.
func (s *Scope) Closed() bool { return s.closed }

func (s *Scope) close() {
	if s == nil || s.closed {
		return
	}
	s.closed = true
	for _, sub := range s.subs {
		sub.Cancel()
	}
	for _, fn := range s.exits {
		fn()
	}
	s.subs, s.exits = nil, nil
}

// Package state holds the session store: the single source of truth for the
// current user, theme and page of one client.
package state

import (
	"context"

	"go.uber.org/zap"

	"github.com/ziadkadry99/diana/internal/prefs"
)

// Store is the reactive session state. It is not safe for concurrent use;
// it is owned by the session's loop.
type Store struct {
	prefs      *prefs.Preferences
	log        *zap.Logger
	applyTheme func(Theme)

	user     *User
	hydrated bool
	theme    Theme
	page     PageID

	subs []*Subscription
}

// Option configures a Store.
type Option func(*Store)

// WithThemeApplier sets the function that applies the theme to the document.
// It is called at construction and on every toggle.
func WithThemeApplier(fn func(Theme)) Option {
	return func(s *Store) { s.applyTheme = fn }
}

// WithLogger sets the store's logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore creates a Store. The theme is read from preferences immediately;
// the user is hydrated lazily on the first User call.
func NewStore(p *prefs.Preferences, opts ...Option) *Store {
	s := &Store{
		prefs: p,
		log:   zap.NewNop(),
		theme: ThemeDark,
		page:  DefaultPage,
	}
	for _, opt := range opts {
		opt(s)
	}

	if t, err := p.Theme(context.Background()); err != nil {
		s.log.Error("loading theme", zap.Error(err))
	} else if t == string(ThemeLight) || t == string(ThemeDark) {
		s.theme = Theme(t)
	}
	if s.applyTheme != nil {
		s.applyTheme(s.theme)
	}
	return s
}

// User returns the current user or nil.
func (s *Store) User() *User {
	if !s.hydrated {
		s.hydrated = true
		var u User
		ok, err := s.prefs.LoadUser(context.Background(), &u)
		if err != nil {
			s.log.Error("hydrating user", zap.Error(err))
		}
		if ok {
			s.user = &u
		}
	}
	return s.user
}

// SetUser replaces the user with a copy of u, persists it and notifies
// subscribers.
func (s *Store) SetUser(u *User) {
	s.hydrated = true
	s.user = u.Clone()
	if err := s.prefs.SaveUser(context.Background(), s.user); err != nil {
		s.log.Error("persisting user", zap.Error(err))
	}
	s.Notify()
}

// Logout clears the user and its persisted copy and notifies subscribers.
func (s *Store) Logout() {
	s.hydrated = true
	s.user = nil
	if err := s.prefs.ClearUser(context.Background()); err != nil {
		s.log.Error("clearing user", zap.Error(err))
	}
	s.Notify()
}

// Theme returns the current theme.
func (s *Store) Theme() Theme { return s.theme }

// ToggleTheme flips the theme, persists and applies it, and notifies
// subscribers.
func (s *Store) ToggleTheme() {
	s.theme = s.theme.Toggled()
	if err := s.prefs.SetTheme(context.Background(), string(s.theme)); err != nil {
		s.log.Error("persisting theme", zap.Error(err))
	}
	if s.applyTheme != nil {
		s.applyTheme(s.theme)
	}
	s.Notify()
}

// CurrentPage returns the active page.
func (s *Store) CurrentPage() PageID { return s.page }

// NavigateTo sets the active page and notifies subscribers. The page is not
// validated.
func (s *Store) NavigateTo(page PageID) {
	s.page = page
	s.Notify()
}

// Snapshot returns a copy of the session for rendering.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{Theme: s.theme, Page: s.page, User: s.User().Clone()}
}

// Subscription is a handle to a registered observer.
type Subscription struct {
	store  *Store
	fn     func(*Store)
	active bool
}

// Cancel unregisters the observer. It is safe to call more than once and
// from within a notification.
func (sub *Subscription) Cancel() {
	if sub == nil || !sub.active {
		return
	}
	sub.active = false
	subs := sub.store.subs
	for i, x := range subs {
		if x == sub {
			sub.store.subs = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Subscribe registers fn to be called, in registration order, on every
// Notify.
func (s *Store) Subscribe(fn func(*Store)) *Subscription {
	sub := &Subscription{store: s, fn: fn, active: true}
	s.subs = append(s.subs, sub)
	return sub
}

// Notify synchronously invokes every subscriber. There is no batching: two
// mutations fire observers twice.
func (s *Store) Notify() {
	subs := append([]*Subscription(nil), s.subs...)
	for _, sub := range subs {
		if sub.active {
			sub.fn(s)
		}
	}
}

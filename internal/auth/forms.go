// Package auth implements the account flows: login and signup forms, the
// profile page actions and logout.
package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ziadkadry99/diana/internal/api"
	"github.com/ziadkadry99/diana/internal/notify"
	"github.com/ziadkadry99/diana/internal/pages"
	"github.com/ziadkadry99/diana/internal/render"
	"github.com/ziadkadry99/diana/internal/state"
	"github.com/ziadkadry99/diana/internal/view"
)

// ErrPasswordMismatch is returned by Signup when the confirmation differs
// from the password. No request is sent.
var ErrPasswordMismatch = errors.New("passwords do not match")

// Client is the account part of the service contract.
type Client interface {
	Login(ctx context.Context, cred api.Credentials) (*state.User, error)
	Signup(ctx context.Context, reg api.Registration) (*state.User, error)
	Logout(ctx context.Context) error
}

// Notifier shows toasts.
type Notifier interface {
	Enqueue(message string, kind notify.Kind) string
}

// Async runs work off the session thread and applies the continuation it
// returns back on it.
type Async interface {
	Go(work func() func())
}

// Action names a completed account flow.
type Action string

const (
	ActionLogin  Action = "login"
	ActionSignup Action = "signup"
	ActionLogout Action = "logout"
)

// Result reports a completed flow. Err is nil on success. For a logout, User
// is the account that was signed out.
type Result struct {
	Action Action
	User   *state.User
	Err    error
}

// ComingSoon is shown by controls whose feature does not exist yet.
const ComingSoon = "🚧 Feature coming soon"

// Forms runs the account flows against a store. All methods must be called
// on the session thread.
type Forms struct {
	ctx      context.Context
	client   Client
	store    *state.Store
	async    Async
	notifier Notifier
	log      *zap.Logger
	results  []func(Result)
}

// Option configures Forms.
type Option func(*Forms)

// WithNotifier sets where toasts go.
func WithNotifier(n Notifier) Option { return func(f *Forms) { f.notifier = n } }

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option { return func(f *Forms) { f.log = log } }

// WithContext sets the context of account requests.
func WithContext(ctx context.Context) Option { return func(f *Forms) { f.ctx = ctx } }

// New creates Forms.
func New(client Client, store *state.Store, async Async, opts ...Option) *Forms {
	f := &Forms{
		ctx:      context.Background(),
		client:   client,
		store:    store,
		async:    async,
		notifier: nopNotifier{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// OnResult registers fn to receive every completed flow.
func (f *Forms) OnResult(fn func(Result)) {
	f.results = append(f.results, fn)
}

// Login submits credentials. On success the user is adopted and the home
// page shown; on failure the server's detail is shown and nothing changes.
func (f *Forms) Login(cred api.Credentials) {
	ctx, client := f.ctx, f.client
	f.async.Go(func() func() {
		u, err := client.Login(ctx, cred)
		return func() {
			if err != nil {
				f.reject(ActionLogin, err, "Connection error")
				return
			}
			f.adopt(ActionLogin, u, "✅ Logged in!")
		}
	})
}

// Signup checks the confirmation locally and then registers the account.
func (f *Forms) Signup(reg api.Registration) error {
	if reg.Password != reg.PasswordConfirm {
		f.notifier.Enqueue("❌ Passwords do not match", notify.KindError)
		return ErrPasswordMismatch
	}
	ctx, client := f.ctx, f.client
	f.async.Go(func() func() {
		u, err := client.Signup(ctx, reg)
		return func() {
			if err != nil {
				f.reject(ActionSignup, err, "Signup error")
				return
			}
			f.adopt(ActionSignup, u, "✅ Signed up! Welcome!")
		}
	})
	return nil
}

// Logout ends the session locally right away. The server is told in the
// background and its answer is only logged.
func (f *Forms) Logout() {
	ctx, client, log := f.ctx, f.client, f.log
	f.async.Go(func() func() {
		if err := client.Logout(ctx); err != nil {
			log.Warn("server logout", zap.Error(err))
		}
		return nil
	})
	was := f.store.User()
	f.store.Logout()
	f.notifier.Enqueue("✅ Logged out", notify.KindSuccess)
	f.store.NavigateTo(state.PageHome)
	f.report(Result{Action: ActionLogout, User: was})
}

func (f *Forms) adopt(action Action, u *state.User, message string) {
	f.log.Info("signed in", zap.String("action", string(action)), zap.String("email", u.Email))
	f.store.SetUser(u)
	f.notifier.Enqueue(message, notify.KindSuccess)
	f.store.NavigateTo(state.PageHome)
	f.report(Result{Action: action, User: u})
}

// reject shows the server's detail verbatim, or fallback when there is none.
func (f *Forms) reject(action Action, err error, fallback string) {
	f.log.Warn("account request failed", zap.String("action", string(action)), zap.Error(err))
	msg := fallback
	var rej *api.RejectionError
	if errors.As(err, &rej) && rej.Detail != "" {
		msg = rej.Detail
	}
	f.notifier.Enqueue("❌ "+msg, notify.KindError)
	f.report(Result{Action: action, Err: err})
}

func (f *Forms) report(r Result) {
	for _, fn := range f.results {
		fn(r)
	}
}

// BindLogin attaches the login page's handlers.
func (f *Forms) BindLogin(doc *render.Document, _ *render.Scope) {
	doc.On(pages.LoginForm, view.Submit, func(p view.Payload) {
		f.Login(api.Credentials{Email: p.Form["email"], Password: p.Form["password"]})
	})
	doc.On(pages.ToSignup, view.Click, func(view.Payload) { f.store.NavigateTo(state.PageSignup) })
}

// BindSignup attaches the signup page's handlers.
func (f *Forms) BindSignup(doc *render.Document, _ *render.Scope) {
	doc.On(pages.SignupForm, view.Submit, func(p view.Payload) {
		_ = f.Signup(api.Registration{
			Name:            p.Form["name"],
			Email:           p.Form["email"],
			Password:        p.Form["password"],
			PasswordConfirm: p.Form["password_confirm"],
		})
	})
	doc.On(pages.ToLogin, view.Click, func(view.Payload) { f.store.NavigateTo(state.PageLogin) })
}

// BindProfile attaches the profile page's handlers. An open logout dialog
// is closed when the page is left.
func (f *Forms) BindProfile(doc *render.Document, scope *render.Scope) {
	soon := func(view.Payload) { f.notifier.Enqueue(ComingSoon, notify.KindInfo) }
	doc.On(pages.ChangePasswordBtn, view.Click, soon)
	doc.On(pages.UpgradeBtn, view.Click, soon)
	doc.On(pages.ProfileLogoutBtn, view.Click, func(view.Payload) { f.ConfirmLogout(doc) })
	scope.OnExit(func() { closeModal(doc) })
}

// ConfirmLogout opens the logout confirmation dialog.
func (f *Forms) ConfirmLogout(doc *render.Document) {
	doc.SetContent(pages.RegionModal, pages.ConfirmLogout())
	dismiss := func(view.Payload) { closeModal(doc) }
	doc.On(pages.ModalClose, view.Click, dismiss)
	doc.On(pages.ModalCancel, view.Click, dismiss)
	doc.On(pages.ModalConfirm, view.Click, func(view.Payload) {
		closeModal(doc)
		f.Logout()
	})
}

func closeModal(doc *render.Document) {
	if n := doc.Find(pages.RegionModal); n != nil && len(n.Children) > 0 {
		doc.SetContent(pages.RegionModal)
	}
}

type nopNotifier struct{}

func (nopNotifier) Enqueue(string, notify.Kind) string { return "" }

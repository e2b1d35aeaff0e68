package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/ziadkadry99/diana/internal/api"
	"github.com/ziadkadry99/diana/internal/notify"
	"github.com/ziadkadry99/diana/internal/pages"
	"github.com/ziadkadry99/diana/internal/prefs"
	"github.com/ziadkadry99/diana/internal/render"
	"github.com/ziadkadry99/diana/internal/state"
	"github.com/ziadkadry99/diana/internal/view"
)

type fakeClient struct {
	user        *state.User
	err         error
	logoutErr   error
	loginCalls  int
	signupCalls int
	logoutCalls int
	lastCred    api.Credentials
	lastReg     api.Registration
}

func (c *fakeClient) Login(_ context.Context, cred api.Credentials) (*state.User, error) {
	c.loginCalls++
	c.lastCred = cred
	return c.user, c.err
}

func (c *fakeClient) Signup(_ context.Context, reg api.Registration) (*state.User, error) {
	c.signupCalls++
	c.lastReg = reg
	return c.user, c.err
}

func (c *fakeClient) Logout(context.Context) error {
	c.logoutCalls++
	return c.logoutErr
}

type inlineAsync struct{}

func (inlineAsync) Go(work func() func()) {
	if cont := work(); cont != nil {
		cont()
	}
}

type recordingNotifier struct{ messages []string }

func (n *recordingNotifier) Enqueue(msg string, _ notify.Kind) string {
	n.messages = append(n.messages, msg)
	return ""
}

func (n *recordingNotifier) last() string {
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

type fixture struct {
	client  *fakeClient
	store   *state.Store
	notes   *recordingNotifier
	forms   *Forms
	doc     *render.Document
	results []Result
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		client: &fakeClient{},
		store:  state.NewStore(prefs.New(prefs.NewMemoryBackend())),
		notes:  &recordingNotifier{},
	}
	f.forms = New(f.client, f.store, inlineAsync{}, WithNotifier(f.notes))
	f.forms.OnResult(func(r Result) { f.results = append(f.results, r) })

	f.doc = render.NewDocument(pages.Shell(f.store.Snapshot()))
	r := render.NewRenderer(f.store, f.doc, pages.NewRegistry(), nil)
	r.Bind(state.PageLogin, f.forms.BindLogin)
	r.Bind(state.PageSignup, f.forms.BindSignup)
	r.Bind(state.PageProfile, f.forms.BindProfile)
	r.Start()
	t.Cleanup(r.Stop)
	return f
}

func TestLoginSuccess(t *testing.T) {
	f := setup(t)
	f.client.user = &state.User{Email: "marie@example.com", Name: "Marie"}
	f.store.NavigateTo(state.PageLogin)

	err := f.doc.Dispatch(pages.LoginForm, view.Submit, view.Payload{Form: map[string]string{
		"email": "marie@example.com", "password": "radium",
	}})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if f.client.lastCred.Email != "marie@example.com" || f.client.lastCred.Password != "radium" {
		t.Errorf("credentials = %+v", f.client.lastCred)
	}
	if u := f.store.User(); u == nil || u.Email != "marie@example.com" {
		t.Errorf("user = %+v", u)
	}
	if f.store.CurrentPage() != state.PageHome {
		t.Errorf("page = %q", f.store.CurrentPage())
	}
	if f.notes.last() != "✅ Logged in!" {
		t.Errorf("toast = %q", f.notes.last())
	}
}

func TestLoginFailureShowsDetail(t *testing.T) {
	f := setup(t)
	f.client.err = &api.RejectionError{StatusCode: 401, Detail: "Incorrect email or password", IsJSON: true}
	f.store.NavigateTo(state.PageLogin)

	f.forms.Login(api.Credentials{Email: "x", Password: "y"})

	if f.notes.last() != "❌ Incorrect email or password" {
		t.Errorf("toast = %q", f.notes.last())
	}
	if f.store.User() != nil || f.store.CurrentPage() != state.PageLogin {
		t.Error("failed login changed the session")
	}
	if len(f.results) != 1 || f.results[0].Err == nil {
		t.Errorf("results = %+v", f.results)
	}
}

func TestLoginOffline(t *testing.T) {
	f := setup(t)
	f.client.err = &api.FetchError{Op: "logging in", Err: errors.New("refused")}
	f.forms.Login(api.Credentials{})
	if f.notes.last() != "❌ Connection error" {
		t.Errorf("toast = %q", f.notes.last())
	}
}

func TestSignupPasswordMismatch(t *testing.T) {
	f := setup(t)
	err := f.forms.Signup(api.Registration{Email: "a@b.c", Password: "one", PasswordConfirm: "two"})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("err = %v", err)
	}
	if f.client.signupCalls != 0 {
		t.Error("request sent despite mismatch")
	}
	if f.notes.last() != "❌ Passwords do not match" {
		t.Errorf("toast = %q", f.notes.last())
	}
}

func TestSignupFromForm(t *testing.T) {
	f := setup(t)
	f.client.user = &state.User{Email: "new@example.com"}
	f.store.NavigateTo(state.PageSignup)

	f.doc.Dispatch(pages.SignupForm, view.Submit, view.Payload{Form: map[string]string{
		"name": "New", "email": "new@example.com", "password": "secret1", "password_confirm": "secret1",
	}})

	if f.client.lastReg.Name != "New" || f.client.lastReg.PasswordConfirm != "secret1" {
		t.Errorf("registration = %+v", f.client.lastReg)
	}
	if f.store.User() == nil || f.store.CurrentPage() != state.PageHome {
		t.Error("signup did not adopt the user")
	}
	if f.notes.last() != "✅ Signed up! Welcome!" {
		t.Errorf("toast = %q", f.notes.last())
	}
}

func TestSwitchBetweenForms(t *testing.T) {
	f := setup(t)
	f.store.NavigateTo(state.PageLogin)
	f.doc.Dispatch(pages.ToSignup, view.Click, view.Payload{})
	if f.store.CurrentPage() != state.PageSignup {
		t.Fatalf("page = %q", f.store.CurrentPage())
	}
	f.doc.Dispatch(pages.ToLogin, view.Click, view.Payload{})
	if f.store.CurrentPage() != state.PageLogin {
		t.Errorf("page = %q", f.store.CurrentPage())
	}
}

func TestLogoutThroughConfirmation(t *testing.T) {
	f := setup(t)
	f.store.SetUser(&state.User{Email: "marie@example.com"})
	f.store.NavigateTo(state.PageProfile)

	if err := f.doc.Dispatch(pages.ProfileLogoutBtn, view.Click, view.Payload{}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if f.doc.Find(pages.ModalConfirm) == nil {
		t.Fatal("confirmation dialog not shown")
	}

	f.doc.Dispatch(pages.ModalConfirm, view.Click, view.Payload{})

	if f.client.logoutCalls != 1 {
		t.Errorf("logout calls = %d", f.client.logoutCalls)
	}
	if f.store.User() != nil {
		t.Error("user still set after logout")
	}
	if f.store.CurrentPage() != state.PageHome {
		t.Errorf("page = %q", f.store.CurrentPage())
	}
	if f.doc.Find(pages.ModalConfirm) != nil {
		t.Error("dialog still open")
	}
	if f.notes.last() != "✅ Logged out" {
		t.Errorf("toast = %q", f.notes.last())
	}
}

func TestLogoutIgnoresServerFailure(t *testing.T) {
	f := setup(t)
	f.client.logoutErr = &api.FetchError{Op: "logging out", Err: errors.New("offline")}
	f.store.SetUser(&state.User{Email: "marie@example.com"})

	f.forms.Logout()
	if f.store.User() != nil {
		t.Error("local session kept after a failed server logout")
	}
	last := f.results[len(f.results)-1]
	if last.Action != ActionLogout || last.User == nil || last.User.Email != "marie@example.com" {
		t.Errorf("logout result = %+v", last)
	}
}

func TestCancelLogout(t *testing.T) {
	f := setup(t)
	f.store.SetUser(&state.User{Email: "marie@example.com"})
	f.store.NavigateTo(state.PageProfile)
	f.doc.Dispatch(pages.ProfileLogoutBtn, view.Click, view.Payload{})
	f.doc.Dispatch(pages.ModalCancel, view.Click, view.Payload{})

	if f.doc.Find(pages.ModalCancel) != nil {
		t.Error("dialog still open after cancel")
	}
	if f.store.User() == nil {
		t.Error("cancel logged the user out")
	}
}

func TestComingSoonButtons(t *testing.T) {
	f := setup(t)
	f.store.SetUser(&state.User{Email: "marie@example.com"})
	f.store.NavigateTo(state.PageProfile)
	f.doc.Dispatch(pages.ChangePasswordBtn, view.Click, view.Payload{})
	if f.notes.last() != ComingSoon {
		t.Errorf("toast = %q", f.notes.last())
	}
}

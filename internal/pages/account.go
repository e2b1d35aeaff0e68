package pages

import (
	"strconv"
	"time"

	"github.com/ziadkadry99/diana/internal/state"
	"github.com/ziadkadry99/diana/internal/view"
)

// Login is the sign-in page.
func Login(state.Snapshot) View {
	return page(authPage("🔐 Log in", "Access your DIANA account",
		view.El("form", view.ID(LoginForm), view.Class("auth-form"), view.Children(
			field("loginEmail", "email", "email", "📧 Email", "you@example.com", 0),
			field("loginPassword", "password", "password", "🔒 Password", "••••••••", 0),
			view.El("button", view.Attribute("type", "submit"), view.Class("btn", "btn-primary", "btn-block"),
				view.Content("🔐 Log in")),
			view.El("p", view.Class("form-footer"), view.Children(
				view.Text("No account yet? "),
				view.El("a", view.ID(ToSignup), view.Attribute("href", "#"), view.Content("Sign up")),
			)),
		)),
	))
}

// Signup is the registration page.
func Signup(state.Snapshot) View {
	return page(authPage("✨ Sign up", "Create your DIANA Premium account",
		view.El("form", view.ID(SignupForm), view.Class("auth-form"), view.Children(
			field("signupName", "name", "text", "👤 Full name", "Jane Doe", 0),
			field("signupEmail", "email", "email", "📧 Email", "you@example.com", 0),
			field("signupPassword", "password", "password", "🔒 Password", "••••••••", 6),
			field("signupPasswordConfirm", "password_confirm", "password", "🔒 Confirm password", "••••••••", 6),
			view.El("button", view.Attribute("type", "submit"), view.Class("btn", "btn-primary", "btn-block"),
				view.Content("✨ Sign up")),
			view.El("p", view.Class("form-footer"), view.Children(
				view.Text("Already have an account? "),
				view.El("a", view.ID(ToLogin), view.Attribute("href", "#"), view.Content("Log in")),
			)),
		)),
	))
}

func authPage(title, subtitle string, form *view.Node) *view.Node {
	return view.El("div", view.Class("page-auth"), view.Children(
		view.El("div", view.Class("auth-container"), view.Children(
			view.El("div", view.Class("auth-card"), view.Children(
				view.El("div", view.Class("auth-header"), view.Children(
					view.El("h1", view.Content(title)),
					view.El("p", view.Content(subtitle)),
				)),
				form,
			)),
		)),
	))
}

func field(id, name, typ, label, placeholder string, minLength int) *view.Node {
	input := view.El("input",
		view.ID(id),
		view.Attribute("type", typ),
		view.Attribute("name", name),
		view.Attribute("placeholder", placeholder),
		view.Class("form-input"),
		view.Attribute("required", ""))
	if minLength > 0 {
		input.Set("minlength", strconv.Itoa(minLength))
	}
	return view.El("div", view.Class("form-group"), view.Children(
		view.El("label", view.Attribute("for", id), view.Content(label)),
		input,
	))
}

// Profile shows the signed-in account. Without a user it redirects to the
// login page.
func Profile(snap state.Snapshot) View {
	u := snap.User
	if u == nil {
		return View{Redirect: state.PageLogin}
	}

	name := u.Name
	if name == "" {
		name = "Not provided"
	}
	accountType, accountClass := "🆓 Free", "free"
	remaining := strconv.Itoa(u.QuotaRemaining)
	if u.IsPremium {
		accountType, accountClass = "✨ Premium", "premium"
		remaining = "∞"
	}
	since := "Unknown"
	if u.CreatedAt != nil {
		since = FormatDate(*u.CreatedAt)
	}

	grid := view.El("div", view.Class("profile-grid"), view.Children(
		Card("👤", "Personal information", "", view.El("div", view.Class("profile-info"), view.Children(
			infoRow("Name:", name, ""),
			infoRow("Email:", u.Email, ""),
			infoRow("Account type:", accountType, accountClass),
			infoRow("Member since:", since, ""),
		))),
		Card("📊", "Usage statistics", "", view.El("div", view.Class("stats-info"), view.Children(
			statItem(strconv.Itoa(u.AnalysesCount), "Analyses performed"),
			statItem(remaining, "Analyses remaining"),
		))),
		Card("🔐", "Account management", "",
			view.El("div", view.Class("setting-item"), view.Children(
				view.El("button", view.ID(ChangePasswordBtn), view.Class("btn", "btn-secondary", "btn-block"),
					view.Content("🔑 Change password")),
			)),
			view.El("div", view.Class("setting-item"), view.Children(
				view.El("button", view.ID(ProfileLogoutBtn), view.Class("btn", "btn-danger", "btn-block"),
					view.Content("🚪 Log out")),
			)),
		),
	))
	if !u.IsPremium {
		grid.Append(Card("✨", "Go Premium", "card-premium",
			view.El("p", view.Content("Unlock unlimited analyses and advanced features!")),
			view.El("ul", view.Class("features-list"), view.Children(
				view.El("li", view.Content("✅ Unlimited analyses")),
				view.El("li", view.Content("✅ Priority processing")),
				view.El("li", view.Content("✅ Full history")),
				view.El("li", view.Content("✅ Priority support")),
			)),
			view.El("button", view.ID(UpgradeBtn), view.Class("btn", "btn-primary", "btn-block"),
				view.Content("Upgrade to Premium")),
		))
	}

	return page(view.El("div", view.Class("page-profile"), view.Children(
		view.El("h1", view.Class("page-title"), view.Content("👤 My profile")),
		grid,
	)))
}

// FormatDate renders a date in long form, e.g. "March 14, 2025".
func FormatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

func infoRow(label, value, class string) *view.Node {
	v := view.El("span", view.Class("info-value", class), view.Content(value))
	return view.El("div", view.Class("info-row"), view.Children(
		view.El("span", view.Class("info-label"), view.Content(label)),
		v,
	))
}

func statItem(value, label string) *view.Node {
	return view.El("div", view.Class("stat-item"), view.Children(
		view.El("div", view.Class("stat-value-large"), view.Content(value)),
		view.El("div", view.Class("stat-label-small"), view.Content(label)),
	))
}

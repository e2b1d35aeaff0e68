package pages

import (
	"github.com/ziadkadry99/diana/internal/state"
	"github.com/ziadkadry99/diana/internal/view"
)

// Shell builds the document around the main region: header with navigation
// and account controls, the stats strip, the main region itself, and the
// modal and toast layers. The main region starts empty.
func Shell(snap state.Snapshot) *view.Node {
	body := view.El("body", view.Attribute("data-theme", string(snap.Theme)), view.Class("theme-"+string(snap.Theme)))
	body.Append(
		view.El("header", view.ID(RegionHeader), view.Class("header"), view.Children(
			view.El("div", view.Class("brand"), view.Children(
				view.El("span", view.Class("brand-logo"), view.Content("🩺")),
				view.El("span", view.Class("brand-name"), view.Content("DIANA")),
			)),
			view.El("nav", view.ID(RegionNav), view.Class("menu"), view.Children(
				navItem(NavHome, "🏠 Home", snap.Page == state.PageHome),
				navItem(NavProfile, "👤 Profile", snap.Page == state.PageProfile),
				navItem(NavSettings, "🎨 Appearance", snap.Page == state.PageSettings),
				navItem(NavHelp, "❓ Help", snap.Page == state.PageHelp),
			)),
			view.El("div", view.Class("header-actions"), view.Children(
				view.El("button", view.ID(LoginBtn), view.Class("btn", "btn-login"), view.Content(LoginLabel(snap.User))),
				view.El("a", view.ID(SignupLink), view.Class("link"), view.Attribute("href", "#"),
					view.Hidden(snap.User != nil), view.Content("✨ Sign up")),
				view.El("a", view.ID(LogoutLink), view.Class("link"), view.Attribute("href", "#"),
					view.Hidden(snap.User == nil), view.Content("🚪 Log out")),
			)),
		)),
		view.El("section", view.ID(RegionStats), view.Class("stats-bar"), view.Children(
			statCard(StatUsed, "0", "", "Analyses performed"),
			statCard(StatRemaining, "-", "", "Analyses remaining"),
			statCard(StatType, "🆓", StatTypeLabel, "Free"),
		)),
		view.El("main", view.ID(RegionMain), view.Class("main-content")),
		view.El("div", view.ID(RegionModal)),
		view.El("div", view.ID(RegionToasts), view.Class("notifications")),
	)
	return body
}

func navItem(id, label string, active bool) *view.Node {
	n := view.El("a", view.ID(id), view.Class("menu-item"), view.Attribute("href", "#"), view.Content(label))
	if active {
		n.AddClass("active")
	}
	return n
}

// statCard builds one stats cell. An empty labelID leaves the label
// unaddressable.
func statCard(valueID, value, labelID, label string) *view.Node {
	lbl := view.El("div", view.Class("stat-label"), view.Content(label))
	if labelID != "" {
		lbl.Set("id", labelID)
	}
	return view.El("div", view.Class("stat-card"), view.Children(
		view.El("div", view.ID(valueID), view.Class("stat-value"), view.Content(value)),
		lbl,
	))
}

// NavTargets maps navigation controls to the page they open.
var NavTargets = map[string]state.PageID{
	NavHome:     state.PageHome,
	NavProfile:  state.PageProfile,
	NavSettings: state.PageSettings,
	NavHelp:     state.PageHelp,
}

// LoginLabel is the header account button's text.
func LoginLabel(u *state.User) string {
	if u == nil {
		return "🔐 Log in"
	}
	return "👤 " + u.DisplayName()
}

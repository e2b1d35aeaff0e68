package pages

import (
	"github.com/ziadkadry99/diana/internal/state"
	"github.com/ziadkadry99/diana/internal/view"
)

// Settings is the appearance page.
func Settings(snap state.Snapshot) View {
	toggle, current := "☀️ Light mode", "Light interface enabled"
	if snap.Theme == state.ThemeDark {
		toggle, current = "🌙 Dark mode", "Dark interface enabled"
	}

	return page(view.El("div", view.Class("page-settings"), view.Children(
		view.El("h1", view.Class("page-title"), view.Content("🎨 Appearance")),
		view.El("div", view.Class("settings-grid"), view.Children(
			Card("🎨", "Interface theme", "",
				settingItem("Display mode", "Choose between dark and light mode",
					view.El("button", view.ID(ThemeToggle), view.Class("btn", "btn-toggle"), view.Content(toggle))),
				settingItem("Current theme", current, nil),
			),
			Card("🔔", "Notifications", "",
				settingItem("Push notifications", "Get notified when an analysis completes",
					switchInput(NotificationToggle, false)),
				settingItem("Email notifications", "Receive emails about important updates",
					switchInput(EmailToggle, true)),
			),
		)),
	)))
}

func settingItem(title, description string, control *view.Node) *view.Node {
	return view.El("div", view.Class("setting-item"), view.Children(
		view.El("div", view.Class("setting-info"), view.Children(
			view.El("h4", view.Content(title)),
			view.El("p", view.Content(description)),
		)),
		control,
	))
}

func switchInput(id string, checked bool) *view.Node {
	input := view.El("input", view.ID(id), view.Attribute("type", "checkbox"))
	input.SetFlag("checked", checked)
	return view.El("label", view.Class("switch"), view.Children(
		input,
		view.El("span", view.Class("slider")),
	))
}

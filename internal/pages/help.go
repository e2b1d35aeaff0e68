package pages

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/yuin/goldmark"

	"github.com/ziadkadry99/diana/internal/state"
	"github.com/ziadkadry99/diana/internal/view"
)

//go:embed help.md
var helpMarkdown []byte

// SupportAddress is shown by the contact button.
const SupportAddress = "support@diana-app.com"

var helpHTML = sync.OnceValue(func() string {
	var buf bytes.Buffer
	if err := goldmark.Convert(helpMarkdown, &buf); err != nil {
		return "<p>Help is unavailable.</p>"
	}
	return buf.String()
})

// Help is the help page. Its body is authored in markdown.
func Help(state.Snapshot) View {
	return page(view.El("div", view.Class("page-help"), view.Children(
		view.El("h1", view.Class("page-title"), view.Content("❓ Help")),
		view.El("div", view.Class("help-grid"), view.Children(
			Card("", "", "help-content", view.Raw(helpHTML())),
			Card("📧", "Contact", "",
				view.El("p", view.Content("Need more help?")),
				view.El("button", view.ID(ContactBtn), view.Class("btn", "btn-primary", "btn-block"),
					view.Content("Contact support")),
			),
		)),
	)))
}

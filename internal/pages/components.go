package pages

import (
	"github.com/ziadkadry99/diana/internal/notify"
	"github.com/ziadkadry99/diana/internal/view"
)

// Card is the bordered content block used by the account and help pages.
func Card(icon, title, class string, content ...*view.Node) *view.Node {
	card := view.El("div", view.Class("card"))
	if class != "" {
		card.AddClass(class)
	}
	if icon != "" {
		card.Append(view.El("div", view.Class("card-icon"), view.Content(icon)))
	}
	if title != "" {
		card.Append(view.El("h3", view.Class("card-title"), view.Content(title)))
	}
	card.Append(view.El("div", view.Class("card-content"), view.Children(content...)))
	return card
}

// ModalAction is a button in a modal footer.
type ModalAction struct {
	ID    string
	Label string
	Class string
}

// Modal builds an overlay dialog. The close button carries ModalClose.
func Modal(title string, body *view.Node, actions ...ModalAction) *view.Node {
	footer := view.El("div", view.Class("modal-footer"))
	for _, a := range actions {
		footer.Append(view.El("button", view.ID(a.ID), view.Class("btn", a.Class), view.Content(a.Label)))
	}
	return view.El("div", view.Class("modal-overlay"), view.Children(
		view.El("div", view.Class("modal-content"), view.Children(
			view.El("div", view.Class("modal-header"), view.Children(
				view.El("h2", view.Content(title)),
				view.El("button", view.ID(ModalClose), view.Class("modal-close"), view.Content("✕")),
			)),
			view.El("div", view.Class("modal-body"), view.Children(body)),
			footer,
		)),
	))
}

// ConfirmLogout is the logout confirmation dialog.
func ConfirmLogout() *view.Node {
	return Modal("Log out",
		view.El("p", view.Content("Are you sure you want to log out?")),
		ModalAction{ID: ModalCancel, Label: "Cancel", Class: "btn-secondary"},
		ModalAction{ID: ModalConfirm, Label: "🚪 Log out", Class: "btn-danger"},
	)
}

// Toasts renders the active toasts, oldest first.
func Toasts(toasts []notify.Toast) []*view.Node {
	nodes := make([]*view.Node, 0, len(toasts))
	for _, t := range toasts {
		n := view.El("div",
			view.ID("toast-"+t.ID),
			view.Class("notification", "notification-"+string(t.Kind)),
			view.Content(t.Message))
		if t.Phase == notify.Visible {
			n.AddClass("show")
		}
		nodes = append(nodes, n)
	}
	return nodes
}

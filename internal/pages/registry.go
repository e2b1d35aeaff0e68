// Package pages maps each page of the client to a pure function from the
// session snapshot to a view tree. Pages attach no behaviour; controls are
// addressed by the IDs declared in this package.
package pages

import (
	"github.com/ziadkadry99/diana/internal/state"
	"github.com/ziadkadry99/diana/internal/view"
)

// View is the result of rendering a page. A non-empty Redirect means the
// page cannot be shown for this snapshot; Node is nil in that case.
type View struct {
	Node     *view.Node
	Redirect state.PageID
}

// PageFunc renders a page.
type PageFunc func(state.Snapshot) View

// Registry resolves page IDs to page functions.
type Registry struct {
	pages map[state.PageID]PageFunc
}

// NewRegistry returns a registry holding every page of the client.
func NewRegistry() *Registry {
	return &Registry{pages: map[state.PageID]PageFunc{
		state.PageHome:     Home,
		state.PageLogin:    Login,
		state.PageSignup:   Signup,
		state.PageProfile:  Profile,
		state.PageSettings: Settings,
		state.PageHelp:     Help,
	}}
}

// Register adds or replaces a page.
func (r *Registry) Register(id state.PageID, fn PageFunc) {
	r.pages[id] = fn
}

// Lookup returns the page function for id.
func (r *Registry) Lookup(id state.PageID) (PageFunc, bool) {
	fn, ok := r.pages[id]
	return fn, ok
}

func page(n *view.Node) View { return View{Node: n} }

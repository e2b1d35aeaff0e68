package render

import (
	"go.uber.org/zap"

	"github.com/ziadkadry99/diana/internal/pages"
	"github.com/ziadkadry99/diana/internal/state"
	"github.com/ziadkadry99/diana/internal/view"
)

// BindFunc attaches a page's handlers after it has been rendered.
type BindFunc func(doc *Document, scope *Scope)

// Renderer keeps the main region in sync with the store's current page.
type Renderer struct {
	store   *state.Store
	doc     *Document
	reg     *pages.Registry
	log     *zap.Logger
	binders map[state.PageID]BindFunc

	sub       *state.Subscription
	scope     *Scope
	rendered  state.PageID
	rendering bool
	pending   bool
}

// NewRenderer creates a Renderer. Call Start to render the first page.
func NewRenderer(store *state.Store, doc *Document, reg *pages.Registry, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		store:   store,
		doc:     doc,
		reg:     reg,
		log:     log,
		binders: make(map[state.PageID]BindFunc),
	}
}

// Bind sets the function that attaches handlers for page.
func (r *Renderer) Bind(page state.PageID, fn BindFunc) {
	r.binders[page] = fn
}

// Start subscribes to the store and renders once.
func (r *Renderer) Start() {
	if r.sub != nil {
		return
	}
	r.sub = r.store.Subscribe(func(*state.Store) { r.Render() })
	r.Render()
}

// Stop unsubscribes and closes the current page scope.
func (r *Renderer) Stop() {
	r.sub.Cancel()
	r.sub = nil
	r.scope.close()
	r.scope = nil
}

// Page returns the page currently shown in the main region.
func (r *Renderer) Page() state.PageID { return r.rendered }

// Render re-renders the active page. A call made while a render is in
// progress, such as the notify caused by a page redirect, is folded into one
// more pass after the current one.
func (r *Renderer) Render() {
	if r.rendering {
		r.pending = true
		return
	}
	r.rendering = true
	defer func() { r.rendering = false }()

	for {
		r.pending = false
		r.renderOnce()
		if !r.pending {
			return
		}
	}
}

func (r *Renderer) renderOnce() {
	snap := r.store.Snapshot()
	r.updateHeader(snap)

	fn, ok := r.reg.Lookup(snap.Page)
	if !ok {
		r.log.Warn("unknown page", zap.String("page", string(snap.Page)))
		return
	}
	v := fn(snap)
	if v.Redirect != "" {
		r.log.Debug("page redirect", zap.String("from", string(snap.Page)), zap.String("to", string(v.Redirect)))
		r.store.NavigateTo(v.Redirect)
		return
	}
	if v.Node == nil {
		return
	}

	r.scope.close()
	r.scope = newScope(r.store)
	r.doc.SetContent(pages.RegionMain, v.Node)
	r.rendered = snap.Page
	if bind := r.binders[snap.Page]; bind != nil {
		bind(r.doc, r.scope)
	}
}

// updateHeader refreshes the account controls and the active menu item.
func (r *Renderer) updateHeader(snap state.Snapshot) {
	signedIn := snap.User != nil
	r.doc.Update(pages.LoginBtn, func(n *view.Node) { n.SetText(pages.LoginLabel(snap.User)) })
	r.doc.Update(pages.SignupLink, func(n *view.Node) { n.SetFlag("hidden", signedIn) })
	r.doc.Update(pages.LogoutLink, func(n *view.Node) { n.SetFlag("hidden", !signedIn) })
	for id, page := range pages.NavTargets {
		active := page == snap.Page
		r.doc.Update(id, func(n *view.Node) {
			if active {
				n.AddClass("active")
			} else {
				n.RemoveClass("active")
			}
		})
	}
}

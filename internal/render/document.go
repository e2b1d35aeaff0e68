// Package render hosts the view tree of one session and re-renders the
// active page on every store notification.
package render

import (
	"errors"
	"fmt"

	"github.com/ziadkadry99/diana/internal/view"
)

// ErrNoHandler is returned by Dispatch when nothing listens for the event.
var ErrNoHandler = errors.New("no handler")

// Patch describes one change to the document, for hosts that mirror it
// elsewhere. Exactly one of its groups is set: an element replacement
// (ID, HTML), a theme change, or a host command.
type Patch struct {
	ID      string `json:"id,omitempty"`
	HTML    string `json:"html,omitempty"`
	Theme   string `json:"theme,omitempty"`
	Command string `json:"command,omitempty"`
}

// Command names understood by hosts.
const (
	CommandOpenPicker = "open-picker"
)

type handlerKey struct {
	id    string
	event view.Event
}

// Document is a view tree with handlers attached by element id.
type Document struct {
	root     *view.Node
	handlers map[handlerKey]view.Handler
	patchFns []func(Patch)
}

// NewDocument wraps root.
func NewDocument(root *view.Node) *Document {
	return &Document{root: root, handlers: make(map[handlerKey]view.Handler)}
}

// Root returns the tree. Callers must not mutate it directly.
func (d *Document) Root() *view.Node { return d.root }

// OnPatch registers fn to receive every change.
func (d *Document) OnPatch(fn func(Patch)) {
	d.patchFns = append(d.patchFns, fn)
}

// Find returns the element with the given id, or nil.
func (d *Document) Find(id string) *view.Node { return d.root.Find(id) }

// SetContent replaces the children of the element id. Handlers attached to
// the replaced descendants are dropped. It reports false if id is absent.
func (d *Document) SetContent(id string, children ...*view.Node) bool {
	n := d.root.Find(id)
	if n == nil {
		return false
	}
	for _, old := range n.IDs() {
		d.off(old)
	}
	n.Children = nil
	n.Append(children...)
	d.emit(Patch{ID: id, HTML: view.HTML(n)})
	return true
}

// Update applies fn to the element id and publishes the result if the
// element changed. It reports false if id is absent.
func (d *Document) Update(id string, fn func(*view.Node)) bool {
	n := d.root.Find(id)
	if n == nil {
		return false
	}
	ids, before := n.IDs(), view.HTML(n)
	fn(n)
	d.dropDetached(n, ids)
	if after := view.HTML(n); after != before {
		d.emit(Patch{ID: id, HTML: after})
	}
	return true
}

// dropDetached removes handlers of ids that fn removed from n's subtree.
func (d *Document) dropDetached(n *view.Node, before []string) {
	if len(before) == 0 {
		return
	}
	kept := make(map[string]bool)
	for _, id := range n.IDs() {
		kept[id] = true
	}
	for _, id := range before {
		if !kept[id] {
			d.off(id)
		}
	}
}

// SetTheme sets the document-wide theme attribute.
func (d *Document) SetTheme(theme string) {
	d.root.Set("data-theme", theme)
	d.root.Set("class", "theme-"+theme)
	d.emit(Patch{Theme: theme})
}

// Command asks the host to perform a host-side action.
func (d *Document) Command(name string) {
	d.emit(Patch{Command: name})
}

// On attaches h to the element id for ev, replacing any previous handler.
func (d *Document) On(id string, ev view.Event, h view.Handler) {
	d.handlers[handlerKey{id, ev}] = h
}

// Bound reports whether a handler is attached.
func (d *Document) Bound(id string, ev view.Event) bool {
	_, ok := d.handlers[handlerKey{id, ev}]
	return ok
}

// Dispatch delivers an event to its handler.
func (d *Document) Dispatch(id string, ev view.Event, p view.Payload) error {
	h, ok := d.handlers[handlerKey{id, ev}]
	if !ok {
		return fmt.Errorf("%s on #%s: %w", ev, id, ErrNoHandler)
	}
	h(p)
	return nil
}

// HTML renders the whole document.
func (d *Document) HTML() string { return view.HTML(d.root) }

func (d *Document) off(id string) {
	for k := range d.handlers {
		if k.id == id {
			delete(d.handlers, k)
		}
	}
}

func (d *Document) emit(p Patch) {
	for _, fn := range d.patchFns {
		fn(p)
	}
}

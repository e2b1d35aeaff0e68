// Package view holds the structured node tree that pages render into. Nodes
// carry no behaviour: event handlers are attached by the document host after
// a page has been rendered.
package view

import (
	"io"
	"strings"
)

// Event names a user interaction delivered by the document host.
type Event string

const (
	Click     Event = "click"
	Submit    Event = "submit"
	Change    Event = "change"
	Drop      Event = "drop"
	DragOver  Event = "dragover"
	DragLeave Event = "dragleave"
)

// File is a file handed over by the host's picker or a drop. Open may be
// called more than once.
type File struct {
	Name string
	Type string
	Size int64
	Open func() (io.ReadCloser, error)
}

// Payload carries the data attached to an event.
type Payload struct {
	Value string
	Form  map[string]string
	Files []File
}

// Handler reacts to an event.
type Handler func(Payload)

// Attr is a single attribute. Attributes keep insertion order so that
// rendering is deterministic.
type Attr struct {
	Key string
	Val string
}

// Node is an element, a text node (empty Tag) or a trusted raw HTML fragment
// (Tag RawTag).
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// RawTag marks a node whose Text is emitted without escaping.
const RawTag = "#raw"

// Option configures an element.
type Option func(*Node)

// El builds an element.
func El(tag string, opts ...Option) *Node {
	n := &Node{Tag: tag}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Text builds a text node.
func Text(s string) *Node { return &Node{Text: s} }

// Raw builds a trusted HTML fragment. Only static, locally authored content
// may go through Raw.
func Raw(html string) *Node { return &Node{Tag: RawTag, Text: html} }

func ID(id string) Option { return func(n *Node) { n.Set("id", id) } }

func Class(classes ...string) Option {
	return func(n *Node) {
		for _, c := range classes {
			n.AddClass(c)
		}
	}
}

func Attribute(key, val string) Option { return func(n *Node) { n.Set(key, val) } }

func Style(css string) Option { return func(n *Node) { n.Set("style", css) } }

// Disabled sets or clears the disabled flag.
func Disabled(on bool) Option {
	return func(n *Node) { n.SetFlag("disabled", on) }
}

// Hidden sets or clears the hidden flag.
func Hidden(on bool) Option {
	return func(n *Node) { n.SetFlag("hidden", on) }
}

// Children appends child nodes, skipping nils.
func Children(children ...*Node) Option {
	return func(n *Node) { n.Append(children...) }
}

// Content appends a single text child.
func Content(s string) Option {
	return func(n *Node) { n.Append(Text(s)) }
}

// Append adds children, skipping nils.
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
}

// Get returns the value of an attribute.
func (n *Node) Get(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Set adds or replaces an attribute.
func (n *Node) Set(key, val string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
}

// Remove deletes an attribute.
func (n *Node) Remove(key string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs = append(n.Attrs[:i], n.Attrs[i+1:]...)
			return
		}
	}
}

// SetFlag sets or removes a boolean attribute.
func (n *Node) SetFlag(key string, on bool) {
	if on {
		n.Set(key, "")
	} else {
		n.Remove(key)
	}
}

// Has reports whether an attribute is present.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// ID returns the id attribute.
func (n *Node) ID() string {
	id, _ := n.Get("id")
	return id
}

// Classes returns the class list.
func (n *Node) Classes() []string {
	c, _ := n.Get("class")
	return strings.Fields(c)
}

// HasClass reports whether the class list contains c.
func (n *Node) HasClass(c string) bool {
	for _, have := range n.Classes() {
		if have == c {
			return true
		}
	}
	return false
}

// AddClass appends c to the class list if missing.
func (n *Node) AddClass(c string) {
	if c == "" || n.HasClass(c) {
		return
	}
	n.Set("class", strings.TrimSpace(strings.Join(append(n.Classes(), c), " ")))
}

// RemoveClass drops c from the class list.
func (n *Node) RemoveClass(c string) {
	var keep []string
	for _, have := range n.Classes() {
		if have != c {
			keep = append(keep, have)
		}
	}
	n.Set("class", strings.Join(keep, " "))
}

// SetText replaces all children with a single text node.
func (n *Node) SetText(s string) {
	n.Children = []*Node{Text(s)}
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns the first node with the given id, or nil.
func (n *Node) Find(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.ID() == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindClass returns all nodes carrying class c, in document order.
func (n *Node) FindClass(c string) []*Node {
	var found []*Node
	n.Walk(func(x *Node) bool {
		if x.HasClass(c) {
			found = append(found, x)
		}
		return true
	})
	return found
}

// IDs returns the ids of every descendant of n, n excluded.
func (n *Node) IDs() []string {
	var ids []string
	for _, c := range n.Children {
		c.Walk(func(x *Node) bool {
			if id := x.ID(); id != "" {
				ids = append(ids, id)
			}
			return true
		})
	}
	return ids
}

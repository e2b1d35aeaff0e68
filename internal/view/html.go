package view

import (
	"html"
	"strings"
)

var voidElements = map[string]bool{
	"area": true, "br": true, "col": true, "hr": true,
	"img": true, "input": true, "link": true, "meta": true,
}

var blockElements = map[string]bool{
	"div": true, "p": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"li": true, "form": true, "section": true, "ul": true, "ol": true,
}

// HTML renders n as markup. Text and attribute values are escaped; only Raw
// nodes are emitted verbatim.
func HTML(n *Node) string {
	var sb strings.Builder
	writeHTML(&sb, n)
	return sb.String()
}

func writeHTML(sb *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	switch n.Tag {
	case "":
		sb.WriteString(html.EscapeString(n.Text))
		return
	case RawTag:
		sb.WriteString(n.Text)
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		if a.Val != "" {
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(a.Val))
			sb.WriteByte('"')
		}
	}
	sb.WriteByte('>')
	if voidElements[n.Tag] {
		return
	}
	for _, c := range n.Children {
		writeHTML(sb, c)
	}
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}

// TextContent returns the visible text of n with block elements separated by
// newlines. Hidden subtrees and raw fragments are skipped.
func TextContent(n *Node) string {
	var sb strings.Builder
	writeText(&sb, n)
	lines := strings.Split(sb.String(), "\n")
	out := lines[:0]
	for _, l := range lines {
		if l = strings.Join(strings.Fields(l), " "); l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

func writeText(sb *strings.Builder, n *Node) {
	if n == nil || n.Tag == RawTag || n.Has("hidden") {
		return
	}
	if n.Tag == "" {
		sb.WriteString(n.Text)
		return
	}
	block := blockElements[n.Tag]
	if block {
		sb.WriteByte('\n')
	}
	for _, c := range n.Children {
		writeText(sb, c)
	}
	if block {
		sb.WriteByte('\n')
	} else if n.Tag == "span" || n.Tag == "strong" {
		sb.WriteByte(' ')
	}
}

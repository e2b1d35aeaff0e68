package view

import (
	"strings"
	"testing"
)

func TestHTMLEscapesText(t *testing.T) {
	n := El("p", ID("msg"), Content(`<script>alert("x")</script>`))
	got := HTML(n)
	if strings.Contains(got, "<script>") {
		t.Errorf("text not escaped: %s", got)
	}
	if !strings.HasPrefix(got, `<p id="msg">`) {
		t.Errorf("unexpected prefix: %s", got)
	}
}

func TestHTMLAttributesInOrder(t *testing.T) {
	n := El("button", ID("analyzeBtn"), Class("btn", "btn-primary"), Disabled(true), Content("Analyze"))
	want := `<button id="analyzeBtn" class="btn btn-primary" disabled>Analyze</button>`
	if got := HTML(n); got != want {
		t.Errorf("HTML = %s, want %s", got, want)
	}
}

func TestHTMLVoidElement(t *testing.T) {
	n := El("img", ID("preview"), Attribute("src", "data:image/png;base64,AA=="))
	if got := HTML(n); strings.Contains(got, "</img>") {
		t.Errorf("void element closed: %s", got)
	}
}

func TestRawIsVerbatim(t *testing.T) {
	n := El("div", Children(Raw("<em>ok</em>")))
	if got := HTML(n); got != "<div><em>ok</em></div>" {
		t.Errorf("HTML = %s", got)
	}
}

func TestFindAndIDs(t *testing.T) {
	root := El("div", ID("root"), Children(
		El("section", ID("a"), Children(El("span", ID("b")))),
		El("p", ID("c")),
	))

	if root.Find("b") == nil {
		t.Fatal("expected to find b")
	}
	if root.Find("missing") != nil {
		t.Error("found a node that does not exist")
	}

	ids := root.IDs()
	want := []string{"a", "b", "c"}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Errorf("IDs = %v, want %v", ids, want)
	}
}

func TestClassManipulation(t *testing.T) {
	n := El("div", Class("notification"))
	n.AddClass("show")
	n.AddClass("show")
	if got, _ := n.Get("class"); got != "notification show" {
		t.Errorf("class = %q", got)
	}
	n.RemoveClass("notification")
	if !n.HasClass("show") || n.HasClass("notification") {
		t.Errorf("class list = %v", n.Classes())
	}
}

func TestTextContentSkipsHidden(t *testing.T) {
	n := El("div", Children(
		El("p", Content("visible")),
		El("p", Hidden(true), Content("secret")),
		El("div", Children(El("span", Content("Normal")), El("strong", Content("5.10%")))),
	))
	got := TextContent(n)
	if strings.Contains(got, "secret") {
		t.Errorf("hidden text rendered: %q", got)
	}
	if !strings.Contains(got, "visible") || !strings.Contains(got, "Normal 5.10%") {
		t.Errorf("TextContent = %q", got)
	}
}

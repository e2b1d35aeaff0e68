package pages

import (
	"github.com/ziadkadry99/diana/internal/state"
	"github.com/ziadkadry99/diana/internal/view"
)

// Home is the analysis page. Its upload zone, preview and result panel are
// driven by the analysis workflow after binding.
func Home(state.Snapshot) View {
	return page(view.El("div", view.Class("page-home"), view.Children(
		view.El("div", view.Class("content-grid"), view.Children(
			view.El("div", view.Class("panel"), view.Children(
				view.El("div", view.Class("panel-title"), view.Content("📸 Select an image")),
				view.El("input", view.ID(FileInput), view.Attribute("type", "file"),
					view.Attribute("accept", "image/*"), view.Hidden(true)),
				view.El("div", view.ID(UploadZone), view.Class("upload-zone"), view.Children(
					view.El("div", view.ID(UploadText), view.Children(UploadPrompt()...)),
					view.El("img", view.ID(Preview), view.Attribute("alt", "preview"), view.Hidden(true)),
				)),
				view.El("div", view.Class("upload-actions"), view.Children(
					view.El("button", view.ID(BrowseBtn), view.Class("btn"), view.Content("📂 Browse")),
					view.El("button", view.ID(AnalyzeBtn), view.Class("btn", "btn-primary"),
						view.Disabled(true), view.Content(AnalyzeLabel)),
					view.El("button", view.ID(ResetBtn), view.Class("btn", "btn-secondary"), view.Content("🔄 Reset")),
				)),
			)),
			view.El("div", view.Class("panel"), view.Children(
				view.El("div", view.Class("panel-title"), view.Content("📊 Analysis results")),
				view.El("div", view.ID(ResultPanel), view.Children(WaitingPanel())),
			)),
		)),
	)))
}

// Labels of the analyze button.
const (
	AnalyzeLabel   = "🔬 ANALYZE"
	AnalyzingLabel = "⏳ Analyzing..."
)

// UploadPrompt is the content of the upload zone when no file is selected.
func UploadPrompt() []*view.Node {
	return []*view.Node{
		view.El("p", view.Class("upload-icon"), view.Content("📁")),
		view.El("p", view.Class("upload-title"), view.Content("Click or drop an image")),
		view.El("p", view.Class("upload-hint"), view.Content("JPG, PNG, BMP, TIFF, WEBP accepted")),
		view.El("p", view.Class("upload-hint", "muted"), view.Content("Maximum size: 50 MB")),
	}
}

// WaitingPanel is the idle result panel.
func WaitingPanel() *view.Node {
	return view.El("div", view.Class("result-content"), view.Children(
		view.El("p", view.Class("muted"), view.Content("Waiting for analysis...")),
		view.El("p", view.Class("muted"), view.Content("Select an image and click ANALYZE")),
	))
}

// AnalyzingPanel is shown while a submission is in flight.
func AnalyzingPanel() *view.Node {
	return view.El("div", view.Class("result-content", "analyzing"), view.Children(
		view.El("div", view.Class("loader")),
		view.El("p", view.Class("analyzing-title"), view.Content("🔬 Analysis in progress...")),
		view.El("p", view.Class("muted"), view.Content("Please wait")),
	))
}

// ErrorPanel replaces the result area after a failed submission.
func ErrorPanel(message string) *view.Node {
	return view.El("div", view.Class("result-content", "result-error"), view.Children(
		view.El("div", view.Class("result-icon"), view.Content("❌")),
		view.El("div", view.Class("result-title"), view.Style("color: #ff3b30"), view.Content("Error")),
		view.El("p", view.Class("result-message"), view.Content(message)),
	))
}

// Bar is one probability row of a result.
type Bar struct {
	Class   string
	Percent string // label text, two decimals
	Width   string // CSS width
}

// Result is the view model of a successful analysis.
type Result struct {
	Label      string
	Icon       string
	Color      string
	CSSClass   string
	Confidence string
	Bars       []Bar
}

// ResultView renders a categorized result.
func ResultView(r Result) *view.Node {
	details := view.El("div", view.Class("result-details"), view.Children(
		view.El("h3", view.Content("Detailed probabilities")),
	))
	for _, b := range r.Bars {
		details.Append(view.El("div", view.Class("probability-bar"), view.Children(
			view.El("div", view.Class("probability-label"), view.Children(
				view.El("span", view.Content(b.Class)),
				view.El("strong", view.Content(b.Percent)),
			)),
			view.El("div", view.Class("bar"), view.Children(
				view.El("div", view.Class("bar-fill"), view.Style("width: "+b.Width)),
			)),
		)))
	}
	return view.El("div", view.Class("result-content", r.CSSClass), view.Children(
		view.El("div", view.Class("result-icon"), view.Content(r.Icon)),
		view.El("div", view.Class("result-title"), view.Style("color: "+r.Color), view.Content(r.Label)),
		view.El("div", view.Class("result-confidence"), view.Content("Confidence: "+r.Confidence)),
		details,
		view.El("div", view.Class("warning"),
			view.Content("⚠️ Diagnostic aid tool • Consult a healthcare professional")),
	))
}

package analysis

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ziadkadry99/diana/internal/api"
	"github.com/ziadkadry99/diana/internal/pages"
)

// Category is the styling bucket of a prediction.
type Category string

const (
	CategoryNormal    Category = "normal"
	CategoryBenign    Category = "benign"
	CategoryMalignant Category = "malignant"
	CategoryUnknown   Category = "unknown"
)

// Style is the presentation of a category.
type Style struct {
	Icon     string
	Color    string
	CSSClass string
}

var styles = map[Category]Style{
	CategoryNormal:    {Icon: "✅", Color: "#4cd964", CSSClass: "result-normal"},
	CategoryBenign:    {Icon: "ℹ️", Color: "#5ac8fa", CSSClass: "result-benign"},
	CategoryMalignant: {Icon: "⚠️", Color: "#ff3b30", CSSClass: "result-malignant"},
	CategoryUnknown:   {Icon: "❓", Color: "#8e8e93", CSSClass: "result-unknown"},
}

// Style returns the presentation of c.
func (c Category) Style() Style {
	if s, ok := styles[c]; ok {
		return s
	}
	return styles[CategoryUnknown]
}

// Categorize picks the styling bucket of a prediction. An explicit category
// from the server wins; otherwise the label is matched.
func Categorize(p *api.Prediction) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(p.Category))); c {
	case CategoryNormal, CategoryBenign, CategoryMalignant:
		return c
	}
	return CategorizeLabel(p.Prediction)
}

// CategorizeLabel matches a human-readable label. The buckets are checked in
// order and are mutually exclusive.
func CategorizeLabel(label string) Category {
	switch {
	case strings.Contains(label, "Normal") || strings.Contains(label, "Sain"):
		return CategoryNormal
	case strings.Contains(label, "Bénin"):
		return CategoryBenign
	case strings.Contains(label, "Malin"):
		return CategoryMalignant
	}
	return CategoryUnknown
}

// Present builds the result panel's view model.
func Present(p *api.Prediction) pages.Result {
	style := Categorize(p).Style()
	r := pages.Result{
		Label:      p.Prediction,
		Icon:       style.Icon,
		Color:      style.Color,
		CSSClass:   style.CSSClass,
		Confidence: fmt.Sprintf("%.1f%%", p.Confidence),
	}
	for _, cp := range p.Probabilities {
		r.Bars = append(r.Bars, pages.Bar{
			Class:   cp.Class,
			Percent: fmt.Sprintf("%.2f%%", cp.Percent),
			Width:   strconv.FormatFloat(cp.Percent, 'f', -1, 64) + "%",
		})
	}
	return r
}

// Failure messages.
const (
	GenericFailure    = "Error during analysis"
	TooLargeFailure   = "File too large. Maximum: 50 MB"
	QuotaFailure      = "Quota exhausted. Log in with a Premium account."
	ConnectionFailure = "Connection error. Check that the server is running."
	ConnectionToast   = "Connection error"
)

// FailureMessage resolves the message shown for a failed submission: the
// JSON detail or message field, else the raw body, else a generic message.
// Status 413 and 429 override the body.
func FailureMessage(err error) string {
	var rej *api.RejectionError
	if !errors.As(err, &rej) {
		return ConnectionFailure
	}
	switch rej.StatusCode {
	case 413:
		return TooLargeFailure
	case 429:
		return QuotaFailure
	}
	if rej.IsJSON {
		if rej.Detail != "" {
			return rej.Detail
		}
		return GenericFailure
	}
	if body := strings.TrimSpace(rej.Body); body != "" {
		return body
	}
	return GenericFailure
}

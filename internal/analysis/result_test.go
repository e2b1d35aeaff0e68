package analysis

import (
	"testing"

	"github.com/ziadkadry99/diana/internal/api"
)

func TestCategorizeLabel(t *testing.T) {
	cases := map[string]Category{
		"Malin - Grade 2":   CategoryMalignant,
		"Tumeur Bénin":      CategoryBenign,
		"Normal":            CategoryNormal,
		"Tissu Sain":        CategoryNormal,
		"Inconclusive":      CategoryUnknown,
		"":                  CategoryUnknown,
		"malin (lowercase)": CategoryUnknown,
	}
	for label, want := range cases {
		if got := CategorizeLabel(label); got != want {
			t.Errorf("CategorizeLabel(%q) = %q, want %q", label, got, want)
		}
	}
}

func TestServerCategoryWins(t *testing.T) {
	p := &api.Prediction{Prediction: "Malin", Category: "Benign"}
	if got := Categorize(p); got != CategoryBenign {
		t.Errorf("Categorize = %q", got)
	}
	p.Category = "something-else"
	if got := Categorize(p); got != CategoryMalignant {
		t.Errorf("Categorize with unknown code = %q", got)
	}
}

func TestStyles(t *testing.T) {
	if s := CategoryMalignant.Style(); s.CSSClass != "result-malignant" || s.Color != "#ff3b30" {
		t.Errorf("malignant style = %+v", s)
	}
	if s := CategoryBenign.Style(); s.CSSClass != "result-benign" || s.Icon != "ℹ️" {
		t.Errorf("benign style = %+v", s)
	}
	if s := CategoryNormal.Style(); s.CSSClass != "result-normal" || s.Icon != "✅" {
		t.Errorf("normal style = %+v", s)
	}
	if s := Category("bogus").Style(); s.CSSClass != "result-unknown" {
		t.Errorf("fallback style = %+v", s)
	}
}

func TestPresent(t *testing.T) {
	r := Present(&api.Prediction{
		Prediction:    "Normal",
		Confidence:    92.456,
		Probabilities: []api.ClassProbability{{Class: "Normal", Percent: 92.456}, {Class: "Malin", Percent: 7.544}},
	})
	if r.Confidence != "92.5%" {
		t.Errorf("Confidence = %q", r.Confidence)
	}
	if r.Bars[0].Percent != "92.46%" || r.Bars[0].Width != "92.456%" {
		t.Errorf("bar = %+v", r.Bars[0])
	}
	if r.CSSClass != "result-normal" {
		t.Errorf("CSSClass = %q", r.CSSClass)
	}
}

func TestFailureMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"json detail", &api.RejectionError{StatusCode: 400, Detail: "The file is empty", IsJSON: true}, "The file is empty"},
		{"json without fields", &api.RejectionError{StatusCode: 500, IsJSON: true, Body: `{}`}, GenericFailure},
		{"raw text", &api.RejectionError{StatusCode: 502, Body: "Bad Gateway"}, "Bad Gateway"},
		{"empty body", &api.RejectionError{StatusCode: 500}, GenericFailure},
		{"too large", &api.RejectionError{StatusCode: 413, Detail: "nginx says no", IsJSON: true}, TooLargeFailure},
		{"quota", &api.RejectionError{StatusCode: 429, Body: "slow down"}, QuotaFailure},
		{"malformed success", &api.RejectionError{StatusCode: 200, Body: "<html>"}, "<html>"},
		{"fetch", &api.FetchError{Op: "x"}, ConnectionFailure},
	}
	for _, tc := range cases {
		if got := FailureMessage(tc.err); got != tc.want {
			t.Errorf("%s: FailureMessage = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestValidateBoundary(t *testing.T) {
	if err := Validate(&Candidate{Size: MaxFileSize, MimeType: "image/png"}); err != nil {
		t.Errorf("file of exactly 50 MiB rejected: %v", err)
	}
	if err := Validate(&Candidate{Size: MaxFileSize + 1, MimeType: "image/png"}); err == nil {
		t.Error("file over 50 MiB accepted")
	}
}

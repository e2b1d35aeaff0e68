package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/diana/internal/analysis"
	"github.com/ziadkadry99/diana/internal/api"
	"github.com/ziadkadry99/diana/internal/walker"
)

func TestFileForReadsContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scan.webp")
	os.WriteFile(path, []byte("webp bytes"), 0644)

	f := fileFor(walker.Describe(path))
	if f.Name != "scan.webp" || f.Type != "image/webp" || f.Size != 10 {
		t.Errorf("file = %+v", f)
	}
	rc, err := f.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	var buf bytes.Buffer
	buf.ReadFrom(rc)
	if buf.String() != "webp bytes" {
		t.Errorf("content = %q", buf.String())
	}
}

func TestFileForMissing(t *testing.T) {
	f := fileFor(walker.Describe(filepath.Join(t.TempDir(), "gone.png")))
	if _, err := f.Open(); err == nil {
		t.Error("expected open error")
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		percent float64
		full    int
	}{
		{0, 0},
		{50, 10},
		{87.3, 17},
		{100, 20},
		{140, 20},
		{-3, 0},
	}
	for _, tt := range tests {
		got := bar(tt.percent)
		if n := strings.Count(got, "█"); n != tt.full {
			t.Errorf("bar(%v) has %d full cells, want %d", tt.percent, n, tt.full)
		}
		if n := len([]rune(got)); n != 20 {
			t.Errorf("bar(%v) width = %d", tt.percent, n)
		}
	}
}

func TestAnalyzeReport(t *testing.T) {
	pred := &api.Prediction{
		Prediction: "Malin - Grade 2",
		Confidence: 87.3,
		Probabilities: []api.ClassProbability{
			{Class: "Normal", Percent: 5.1},
			{Class: "Malin", Percent: 87.3},
		},
	}
	ok := newAnalyzeReport(walker.FileInfo{Path: "scan.jpg", ContentHash: "abc"}, analysis.Outcome{
		Name:       "scan.jpg",
		Status:     analysis.Succeeded,
		Prediction: pred,
		Category:   analysis.CategoryMalignant,
	})
	var buf bytes.Buffer
	ok.print(&buf)
	out := buf.String()
	for _, want := range []string{"scan.jpg: Malin - Grade 2", "87.3%", "malignant", "Normal", "5.10%"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}

	if ok.SHA256 != "abc" {
		t.Errorf("hash not carried: %+v", ok)
	}

	failed := newAnalyzeReport(walker.FileInfo{Path: "big.png"}, analysis.Outcome{
		Status: analysis.Failed,
		Err:    errors.New("boom"),
	})
	if failed.Error != "boom" || failed.Prediction != nil {
		t.Errorf("failed report = %+v", failed)
	}
	buf.Reset()
	failed.print(&buf)
	if !strings.HasPrefix(buf.String(), "❌ big.png: boom") {
		t.Errorf("failure line = %q", buf.String())
	}
}

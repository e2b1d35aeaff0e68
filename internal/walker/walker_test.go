package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// scanTree creates a directory of sample scans and returns its path.
func scanTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string][]byte{
		"patient1/front.png":      pngHeader,
		"patient1/side.jpg":       []byte("jpeg"),
		"patient2/scan.tiff":      []byte("tiff"),
		"patient2/sniffed.bin":    pngHeader,
		"patient2/notes.txt":      []byte("not an image"),
		".git/objects/ab.png":     pngHeader,
		"patient3/draft/old.webp": []byte("webp"),
	}
	for name, data := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func relPaths(t *testing.T, root string, files []FileInfo) []string {
	t.Helper()
	var out []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f.Path)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestWalk_FindsImagesOnly(t *testing.T) {
	dir := scanTree(t)

	files, err := Walk(dir, Config{})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	got := strings.Join(relPaths(t, dir, files), ",")
	want := "patient1/front.png,patient1/side.jpg,patient2/scan.tiff,patient2/sniffed.bin,patient3/draft/old.webp"
	if got != want {
		t.Errorf("Walk() = %s\nwant %s", got, want)
	}
}

func TestWalk_ExcludeFilter(t *testing.T) {
	dir := scanTree(t)

	files, err := Walk(dir, Config{Exclude: []string{"**/draft/**", "*.jpg"}})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	for _, f := range files {
		if strings.Contains(f.Path, "draft") || strings.HasSuffix(f.Path, ".jpg") {
			t.Errorf("exclude filter let through: %s", f.Path)
		}
	}
	if len(files) != 3 {
		t.Errorf("expected 3 files, got %d", len(files))
	}
}

func TestWalk_FileInfoFields(t *testing.T) {
	dir := scanTree(t)

	files, err := Walk(filepath.Join(dir, "patient2"), Config{})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	var sniffed *FileInfo
	for i := range files {
		if files[i].Name == "sniffed.bin" {
			sniffed = &files[i]
		}
	}
	if sniffed == nil {
		t.Fatal("sniffed.bin not found")
	}
	if sniffed.MediaType != "image/png" {
		t.Errorf("MediaType = %q", sniffed.MediaType)
	}
	if sniffed.Size != int64(len(pngHeader)) {
		t.Errorf("Size = %d", sniffed.Size)
	}
	if len(sniffed.ContentHash) != 64 {
		t.Errorf("ContentHash = %q", sniffed.ContentHash)
	}
}

func TestWalk_ContentHashConsistency(t *testing.T) {
	dir := scanTree(t)

	a := Describe(filepath.Join(dir, "patient1", "front.png"))
	b := Describe(filepath.Join(dir, "patient2", "sniffed.bin"))
	c := Describe(filepath.Join(dir, "patient1", "side.jpg"))

	if a.ContentHash != b.ContentHash {
		t.Errorf("identical content hashed differently: %s vs %s", a.ContentHash, b.ContentHash)
	}
	if a.ContentHash == c.ContentHash {
		t.Error("different content hashed the same")
	}
}

func TestExpand_MixedArguments(t *testing.T) {
	dir := scanTree(t)

	files, err := Expand([]string{
		filepath.Join(dir, "patient1", "*.png"),
		filepath.Join(dir, "patient2"),
		filepath.Join(dir, "patient1", "front.png"),
		filepath.Join(dir, "missing.png"),
	}, Config{})
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}

	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	got := strings.Join(names, ",")
	want := "front.png,scan.tiff,sniffed.bin,missing.png"
	if got != want {
		t.Errorf("Expand() = %s, want %s", got, want)
	}

	missing := files[len(files)-1]
	if missing.Size != 0 || missing.ContentHash != "" || missing.MediaType != "image/png" {
		t.Errorf("missing file described as %+v", missing)
	}
}

func TestExpand_DoubleStarGlob(t *testing.T) {
	dir := scanTree(t)

	files, err := Expand([]string{filepath.Join(dir, "**", "*.webp")}, Config{})
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	if len(files) != 1 || files[0].Name != "old.webp" {
		t.Errorf("Expand() = %+v", files)
	}
}

func TestExpand_NoMatch(t *testing.T) {
	dir := scanTree(t)

	if _, err := Expand([]string{filepath.Join(dir, "*.dcm")}, Config{}); err == nil ||
		!strings.Contains(err.Error(), "no files match") {
		t.Errorf("expected no-match error, got %v", err)
	}

	empty := t.TempDir()
	if _, err := Expand([]string{empty}, Config{}); err == nil ||
		!strings.Contains(err.Error(), "no images") {
		t.Errorf("expected empty directory error, got %v", err)
	}
}

func TestDetectType(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		path string
		want string
	}{
		{write("scan.JPG", []byte("x")), "image/jpeg"},
		{write("scan.tif", []byte("x")), "image/tiff"},
		{write("scan.bin", pngHeader), "image/png"},
		{write("notes", []byte("hello")), "text/plain"},
		{filepath.Join(dir, "absent"), ""},
	}
	for _, tt := range tests {
		if got := DetectType(tt.path); got != tt.want {
			t.Errorf("DetectType(%s) = %q, want %q", filepath.Base(tt.path), got, tt.want)
		}
	}
}

func TestMatchesExclude(t *testing.T) {
	if MatchesExclude("a/b.png", nil) {
		t.Error("empty patterns should exclude nothing")
	}
	if !MatchesExclude("a/b/c.png", []string{"**/b/**"}) {
		t.Error("expected ** pattern to match")
	}
	if !MatchesExclude("deep/dir/x.jpg", []string{"*.jpg"}) {
		t.Error("expected base name match")
	}
	if MatchesExclude("x.png", []string{"*.jpg"}) {
		t.Error("unexpected match")
	}
}

func TestHasMeta(t *testing.T) {
	for s, want := range map[string]bool{
		"scan.png":        false,
		"scans/*.png":     true,
		"scans/**":        true,
		"scan[12].png":    true,
		"{a,b}.png":       true,
		"/tmp/plain/file": false,
	} {
		if got := HasMeta(s); got != want {
			t.Errorf("HasMeta(%q) = %v, want %v", s, got, want)
		}
	}
}

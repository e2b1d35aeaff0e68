// Package walker resolves command line arguments into the image files to
// analyze: plain paths, directories walked recursively, and doublestar globs.
package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// FileInfo holds metadata about a single file to analyze.
type FileInfo struct {
	Path        string // Path as given or discovered.
	Name        string // Base name sent to the service.
	Size        int64  // File size in bytes; 0 when the file cannot be read.
	MediaType   string // Detected media type.
	ContentHash string // SHA-256 hex digest of the content; "" when unreadable.
}

// Config controls Expand and Walk.
type Config struct {
	Exclude []string // Glob patterns; matching files are skipped.
}

// Expand resolves each argument in order. A directory contributes the
// images found beneath it, a glob every file it matches, and any other
// argument itself, even if it does not exist, so that the failure is
// reported per file. Duplicate paths are dropped.
func Expand(args []string, config Config) ([]FileInfo, error) {
	var files []FileInfo
	seen := make(map[string]bool)
	add := func(fi FileInfo) {
		if !seen[fi.Path] {
			seen[fi.Path] = true
			files = append(files, fi)
		}
	}

	for _, arg := range args {
		switch {
		case HasMeta(arg):
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("walker: invalid pattern %q: %w", arg, err)
			}
			n := 0
			for _, m := range matches {
				if MatchesExclude(m, config.Exclude) {
					continue
				}
				add(Describe(m))
				n++
			}
			if n == 0 {
				return nil, fmt.Errorf("walker: no files match %q", arg)
			}

		case isDir(arg):
			found, err := Walk(arg, config)
			if err != nil {
				return nil, err
			}
			if len(found) == 0 {
				return nil, fmt.Errorf("walker: no images under %s", arg)
			}
			for _, fi := range found {
				add(fi)
			}

		default:
			add(Describe(arg))
		}
	}
	return files, nil
}

// Walk traverses the directory tree rooted at root and returns every image
// file that is not excluded, in lexical order.
func Walk(root string, config Config) ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}

		// Skip default-excluded directories.
		if d.IsDir() {
			if path != root && shouldExcludeDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		// Only process regular files.
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if MatchesExclude(rel, config.Exclude) {
			return nil
		}

		fi := Describe(path)
		if !IsImage(fi.MediaType) {
			return nil
		}
		files = append(files, fi)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	return files, nil
}

// Describe collects the metadata of one file. A file that cannot be read is
// still described by its name and extension.
func Describe(path string) FileInfo {
	fi := FileInfo{
		Path:      path,
		Name:      filepath.Base(path),
		MediaType: DetectType(path),
	}
	if info, err := os.Stat(path); err == nil {
		fi.Size = info.Size()
	}
	if hash, err := hashFile(path); err == nil {
		fi.ContentHash = hash
	}
	return fi
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// hashFile computes the SHA-256 digest of the given file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

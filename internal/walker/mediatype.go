package walker

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// extensionToType maps image extensions to media types.
var extensionToType = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".jpe":  "image/jpeg",
	".png":  "image/png",
	".bmp":  "image/bmp",
	".dib":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// DetectType returns the media type of the file at path. The extension is
// tried first; otherwise the first 512 bytes are sniffed. An unreadable file
// without a known extension yields "".
func DetectType(path string) string {
	if t, ok := extensionToType[strings.ToLower(filepath.Ext(path))]; ok {
		return t
	}

	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return ""
	}
	t := http.DetectContentType(buf[:n])
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return t
}

// IsImage reports whether mediaType names an image.
func IsImage(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/")
}

// Package analysis implements the image analysis workflow bound to the home
// page: choose or drop a file, validate it, submit it to the prediction
// endpoint and present the categorized result.
package analysis

import (
	"fmt"
	"slices"
)

// MaxFileSize is the largest upload accepted before any request is sent.
const MaxFileSize = 50 << 20

// AcceptedTypes are the media types that may be submitted.
var AcceptedTypes = []string{"image/jpeg", "image/png", "image/bmp", "image/tiff", "image/webp"}

// Accepted reports whether mimeType may be submitted.
func Accepted(mimeType string) bool {
	return slices.Contains(AcceptedTypes, mimeType)
}

// Status is the workflow's position in its state machine.
type Status int

const (
	Empty Status = iota
	Selected
	Analyzing
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Empty:
		return "empty"
	case Selected:
		return "selected"
	case Analyzing:
		return "analyzing"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Candidate is the file chosen for upload. Data is nil when the declared size
// already exceeds MaxFileSize.
type Candidate struct {
	Name       string
	MimeType   string
	Size       int64
	Data       []byte
	PreviewURL string
}

// Reason classifies a ValidationError.
type Reason string

const (
	ReasonNoFile          Reason = "no_file"
	ReasonTooLarge        Reason = "too_large"
	ReasonUnsupportedType Reason = "unsupported_type"
)

// ValidationError is a client-side rejection. No request is sent.
type ValidationError struct {
	Reason  Reason
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validate checks a candidate before submission.
func Validate(c *Candidate) error {
	switch {
	case c == nil:
		return &ValidationError{Reason: ReasonNoFile, Message: "No file selected"}
	case c.Size > MaxFileSize:
		return &ValidationError{
			Reason:  ReasonTooLarge,
			Message: fmt.Sprintf("File too large (%.2f MB). Maximum: 50 MB", float64(c.Size)/1024/1024),
		}
	case !Accepted(c.MimeType):
		return &ValidationError{
			Reason:  ReasonUnsupportedType,
			Message: fmt.Sprintf("Unsupported file type: %s", c.MimeType),
		}
	}
	return nil
}

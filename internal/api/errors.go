package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FetchError is returned when no response was received at all.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }

// RejectionError is returned for a non-2xx response, and for a 2xx response
// whose body could not be decoded.
type RejectionError struct {
	StatusCode int
	// Detail is the JSON body's detail field, or its message field when
	// detail is empty.
	Detail string
	// IsJSON reports whether the body parsed as a JSON object.
	IsJSON bool
	// Body is the raw response text.
	Body string
}

func (e *RejectionError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = strings.TrimSpace(e.Body)
	}
	if msg == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, msg)
}

// Malformed reports whether the server answered 2xx with an undecodable body.
func (e *RejectionError) Malformed() bool {
	return e.StatusCode >= 200 && e.StatusCode < 300
}

func newRejection(status int, body []byte) *RejectionError {
	e := &RejectionError{StatusCode: status, Body: string(body)}
	var fields struct {
		Detail  any `json:"detail"`
		Message any `json:"message"`
	}
	if err := json.Unmarshal(body, &fields); err == nil {
		e.IsJSON = true
		e.Detail = stringField(fields.Detail)
		if e.Detail == "" {
			e.Detail = stringField(fields.Message)
		}
	}
	return e
}

// stringField renders a JSON detail value. Validation errors from the server
// arrive as a list of objects; they are kept as compact JSON.
func stringField(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

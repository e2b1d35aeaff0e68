// Package notify implements the toast queue: short-lived, self-dismissing
// messages shown on top of the client.
package notify

import "time"

// Kind styles a toast.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Phase is the lifecycle position of a toast.
type Phase int

const (
	Invisible Phase = iota
	Visible
	Hidden
	Removed
)

func (p Phase) String() string {
	switch p {
	case Invisible:
		return "invisible"
	case Visible:
		return "visible"
	case Hidden:
		return "hidden"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Toast is a single notification.
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Kind      Kind      `json:"kind"`
	Phase     Phase     `json:"phase"`
	CreatedAt time.Time `json:"created_at"`
}

// Timing controls the toast lifecycle.
type Timing struct {
	ShowDelay time.Duration // Invisible -> Visible
	Dwell     time.Duration // Visible -> Hidden
	ExitDelay time.Duration // Hidden -> Removed
}

// DefaultTiming matches the stylesheet's transitions.
var DefaultTiming = Timing{
	ShowDelay: 10 * time.Millisecond,
	Dwell:     3 * time.Second,
	ExitDelay: 300 * time.Millisecond,
}

// Package audit keeps a local trail of analyses and account actions.
package audit

import "time"

// Action describes what was done.
type Action string

const (
	ActionAnalysisSucceeded Action = "analysis_succeeded"
	ActionAnalysisFailed    Action = "analysis_failed"
	ActionLogin             Action = "login"
	ActionLoginFailed       Action = "login_failed"
	ActionSignup            Action = "signup"
	ActionSignupFailed      Action = "signup_failed"
	ActionLogout            Action = "logout"
)

// Entry is a single audit trail record.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Session    string    `json:"session"`
	Action     Action    `json:"action"`
	Subject    string    `json:"subject"` // file name or account email
	Prediction string    `json:"prediction,omitempty"`
	Category   string    `json:"category,omitempty"`
	Confidence float64   `json:"confidence,omitempty"`
	Detail     string    `json:"detail,omitempty"`
}

package state

import "time"

// Theme is the presentation theme of the document.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// PageID names a page of the client.
type PageID string

const (
	PageHome     PageID = "home"
	PageLogin    PageID = "login"
	PageSignup   PageID = "signup"
	PageProfile  PageID = "profile"
	PageSettings PageID = "settings"
	PageHelp     PageID = "help"
)

// DefaultPage is the page shown after start-up.
const DefaultPage = PageHome

// User is the authenticated account as returned by the server.
type User struct {
	Email          string     `json:"email"`
	Name           string     `json:"name,omitempty"`
	IsPremium      bool       `json:"is_premium"`
	AnalysesCount  int        `json:"analyses_count,omitempty"`
	QuotaRemaining int        `json:"quota_remaining,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// Clone returns a deep copy of u, or nil.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.CreatedAt != nil {
		t := *u.CreatedAt
		c.CreatedAt = &t
	}
	return &c
}

// DisplayName returns the name, falling back to the email.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Snapshot is a read-only copy of the session handed to page renderers.
type Snapshot struct {
	User  *User
	Theme Theme
	Page  PageID
}

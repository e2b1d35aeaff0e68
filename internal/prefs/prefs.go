// Package prefs persists the client's scalar settings: the theme and the
// serialized session user.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
)

// Keys used in the backing store.
const (
	KeyTheme = "theme"
	KeyUser  = "user"
)

// Backend is a string key-value store.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Preferences reads and writes settings through a Backend.
type Preferences struct {
	backend Backend
}

// New creates Preferences over the given backend.
func New(backend Backend) *Preferences {
	return &Preferences{backend: backend}
}

// Theme returns the stored theme, or "" when none is stored.
func (p *Preferences) Theme(ctx context.Context) (string, error) {
	v, _, err := p.backend.Get(ctx, KeyTheme)
	if err != nil {
		return "", fmt.Errorf("reading theme: %w", err)
	}
	return v, nil
}

// SetTheme stores the theme.
func (p *Preferences) SetTheme(ctx context.Context, theme string) error {
	if err := p.backend.Set(ctx, KeyTheme, theme); err != nil {
		return fmt.Errorf("writing theme: %w", err)
	}
	return nil
}

// LoadUser decodes the stored user into v. It reports false when no user is
// stored.
func (p *Preferences) LoadUser(ctx context.Context, v any) (bool, error) {
	raw, ok, err := p.backend.Get(ctx, KeyUser)
	if err != nil {
		return false, fmt.Errorf("reading user: %w", err)
	}
	if !ok || raw == "" || raw == "null" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decoding stored user: %w", err)
	}
	return true, nil
}

// SaveUser stores v as JSON.
func (p *Preferences) SaveUser(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	if err := p.backend.Set(ctx, KeyUser, string(data)); err != nil {
		return fmt.Errorf("writing user: %w", err)
	}
	return nil
}

// ClearUser removes the stored user.
func (p *Preferences) ClearUser(ctx context.Context) error {
	if err := p.backend.Delete(ctx, KeyUser); err != nil {
		return fmt.Errorf("removing user: %w", err)
	}
	return nil
}

package app

import (
	"context"
	"errors"
	"testing"

	"github.com/ziadkadry99/diana/internal/analysis"
	"github.com/ziadkadry99/diana/internal/audit"
	"github.com/ziadkadry99/diana/internal/auth"
	"github.com/ziadkadry99/diana/internal/db"
	"github.com/ziadkadry99/diana/internal/render"
	"github.com/ziadkadry99/diana/internal/state"
)

func openAuditDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func queryAll(t *testing.T, trail *audit.Store) []audit.Entry {
	t.Helper()
	entries, err := trail.Query(context.Background(), audit.QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	return entries
}

func TestAccountActionsCoverEveryFlow(t *testing.T) {
	for _, a := range []auth.Action{auth.ActionLogin, auth.ActionSignup, auth.ActionLogout} {
		if _, ok := accountActions[a]; !ok {
			t.Errorf("no audit action for %q", a)
		}
	}
	if got := accountActions[auth.ActionLogin][1]; got != audit.ActionLoginFailed {
		t.Errorf("login failure = %q", got)
	}
}

func TestRecordFailedAnalysisAndLogin(t *testing.T) {
	database := openAuditDB(t)
	trail := audit.NewStore(database)
	s, _ := startSessionWith(t, Options{Audit: trail})

	inspect(t, s, func(*render.Document) {
		s.recordAnalysis(analysis.Outcome{Name: "big.png", Status: analysis.Failed, Message: "File too large"})
		s.recordAccount(auth.Result{Action: auth.ActionLogin, Err: errors.New("Invalid credentials")})
		s.recordAccount(auth.Result{Action: auth.ActionSignup, User: &state.User{Email: "marie@example.com"}})
	})
	settle(t, s)

	entries := queryAll(t, trail)
	byAction := make(map[audit.Action]audit.Entry)
	for _, e := range entries {
		byAction[e.Action] = e
	}
	if e := byAction[audit.ActionAnalysisFailed]; e.Subject != "big.png" || e.Detail != "File too large" {
		t.Errorf("failed analysis entry = %+v", e)
	}
	if e := byAction[audit.ActionLoginFailed]; e.Detail != "Invalid credentials" {
		t.Errorf("failed login entry = %+v", e)
	}
	if e := byAction[audit.ActionSignup]; e.Subject != "marie@example.com" {
		t.Errorf("signup entry = %+v", e)
	}
}

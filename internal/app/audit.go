package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/ziadkadry99/diana/internal/analysis"
	"github.com/ziadkadry99/diana/internal/audit"
	"github.com/ziadkadry99/diana/internal/auth"
)

func (s *Session) recordAnalysis(o analysis.Outcome) {
	e := audit.Entry{Session: s.ID, Subject: o.Name}
	if o.Status == analysis.Succeeded {
		e.Action = audit.ActionAnalysisSucceeded
		e.Prediction = o.Prediction.Prediction
		e.Confidence = o.Prediction.Confidence
		e.Category = string(o.Category)
	} else {
		e.Action = audit.ActionAnalysisFailed
		e.Detail = o.Message
	}
	s.record(e)
}

var accountActions = map[auth.Action][2]audit.Action{
	auth.ActionLogin:  {audit.ActionLogin, audit.ActionLoginFailed},
	auth.ActionSignup: {audit.ActionSignup, audit.ActionSignupFailed},
	auth.ActionLogout: {audit.ActionLogout, audit.ActionLogout},
}

func (s *Session) recordAccount(r auth.Result) {
	actions, ok := accountActions[r.Action]
	if !ok {
		return
	}
	e := audit.Entry{Session: s.ID, Action: actions[0]}
	if r.User != nil {
		e.Subject = r.User.Email
	}
	if r.Err != nil {
		e.Action = actions[1]
		e.Detail = r.Err.Error()
	}
	s.record(e)
}

// record writes e off the loop.
func (s *Session) record(e audit.Entry) {
	store, log := s.audit, s.log
	s.Loop.Go(func() func() {
		if err := store.Log(context.Background(), e); err != nil {
			log.Error("writing audit entry", zap.String("action", string(e.Action)), zap.Error(err))
		}
		return nil
	})
}

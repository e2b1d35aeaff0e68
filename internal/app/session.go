// Package app wires one client session: the store, the document and its
// renderer, the analysis workflow, the account flows, the toast queue and
// the stats poller, all running on a single loop, plus an optional audit
// trail.
package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/diana/internal/analysis"
	"github.com/ziadkadry99/diana/internal/api"
	"github.com/ziadkadry99/diana/internal/audit"
	"github.com/ziadkadry99/diana/internal/auth"
	"github.com/ziadkadry99/diana/internal/loop"
	"github.com/ziadkadry99/diana/internal/notify"
	"github.com/ziadkadry99/diana/internal/pages"
	"github.com/ziadkadry99/diana/internal/prefs"
	"github.com/ziadkadry99/diana/internal/progress"
	"github.com/ziadkadry99/diana/internal/render"
	"github.com/ziadkadry99/diana/internal/state"
	"github.com/ziadkadry99/diana/internal/stats"
	"github.com/ziadkadry99/diana/internal/view"
)

// Backend is the service contract a session talks to.
type Backend interface {
	analysis.Predictor
	auth.Client
	stats.Fetcher
}

var _ Backend = (*api.Client)(nil)

// Options configure a Session.
type Options struct {
	Backend Backend
	Prefs   *prefs.Preferences
	// Indicator is shown while an analysis is in flight. Defaults to none.
	Indicator progress.Indicator
	// StatsInterval defaults to stats.DefaultInterval.
	StatsInterval time.Duration
	// NoPolling disables the periodic stats refresh. Explicit refreshes
	// still happen.
	NoPolling bool
	// Timing overrides the toast lifecycle.
	Timing *notify.Timing
	// Audit records settled analyses and account actions when set.
	Audit  *audit.Store
	Logger *zap.Logger
}

// Session is one running client.
type Session struct {
	ID       string
	Loop     *loop.Loop
	Store    *state.Store
	Doc      *render.Document
	Renderer *render.Renderer
	Toasts   *notify.Queue
	Workflow *analysis.Workflow
	Forms    *auth.Forms
	Stats    *stats.Poller

	log       *zap.Logger
	audit     *audit.Store
	noPolling bool
}

// NewSession builds a session. Nothing runs until Run.
func NewSession(ctx context.Context, opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	indicator := opts.Indicator
	if indicator == nil {
		indicator = progress.Nop{}
	}
	interval := opts.StatsInterval
	if interval <= 0 {
		interval = stats.DefaultInterval
	}

	s := &Session{
		ID:        uuid.New().String(),
		Loop:      loop.New(),
		audit:     opts.Audit,
		noPolling: opts.NoPolling,
	}
	s.log = log.With(zap.String("session", s.ID))

	s.Doc = render.NewDocument(pages.Shell(state.Snapshot{Theme: state.ThemeDark, Page: state.DefaultPage}))
	s.Store = state.NewStore(opts.Prefs,
		state.WithLogger(s.log.Named("store")),
		state.WithThemeApplier(func(t state.Theme) { s.Doc.SetTheme(string(t)) }))

	queueOpts := []notify.Option{notify.WithLogger(s.log.Named("toasts"))}
	if opts.Timing != nil {
		queueOpts = append(queueOpts, notify.WithTiming(*opts.Timing))
	}
	s.Toasts = notify.NewQueue(s.Loop, queueOpts...)

	s.Stats = stats.New(opts.Backend, s.Loop, s.Doc,
		stats.WithInterval(interval),
		stats.WithContext(ctx),
		stats.WithLogger(s.log.Named("stats")))

	s.Workflow = analysis.New(opts.Backend, s.Loop,
		analysis.WithNotifier(s.Toasts),
		analysis.WithIndicator(indicator),
		analysis.WithStats(s.Stats),
		analysis.WithContext(ctx),
		analysis.WithLogger(s.log.Named("workflow")))

	s.Forms = auth.New(opts.Backend, s.Store, s.Loop,
		auth.WithNotifier(s.Toasts),
		auth.WithContext(ctx),
		auth.WithLogger(s.log.Named("auth")))

	s.Renderer = render.NewRenderer(s.Store, s.Doc, pages.NewRegistry(), s.log.Named("renderer"))
	return s
}

// Run starts the session and serves its loop until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.Loop.Post(s.start)
	err := s.Loop.Run(ctx)
	s.Stats.Stop()
	s.Renderer.Stop()
	return err
}

// Dispatch delivers a host event on the session's loop.
func (s *Session) Dispatch(id string, ev view.Event, p view.Payload) {
	s.Loop.Post(func() {
		if err := s.Doc.Dispatch(id, ev, p); err != nil {
			s.log.Debug("event dropped", zap.Error(err))
		}
	})
}

// DispatchPath delivers a host event to the first element in ids, innermost
// first, that has a handler for ev. Browsers report clicks on the deepest
// element, which is often an unbound child of the control.
func (s *Session) DispatchPath(ids []string, ev view.Event, p view.Payload) {
	s.Loop.Post(func() {
		for _, id := range ids {
			if s.Doc.Bound(id, ev) {
				if err := s.Doc.Dispatch(id, ev, p); err != nil {
					s.log.Debug("event dropped", zap.Error(err))
				}
				return
			}
		}
		s.log.Debug("event unbound", zap.Strings("path", ids), zap.String("event", string(ev)))
	})
}

func (s *Session) start() {
	s.bindShell()
	s.Renderer.Bind(state.PageHome, s.Workflow.Bind)
	s.Renderer.Bind(state.PageLogin, s.Forms.BindLogin)
	s.Renderer.Bind(state.PageSignup, s.Forms.BindSignup)
	s.Renderer.Bind(state.PageProfile, s.Forms.BindProfile)
	s.Renderer.Bind(state.PageSettings, s.bindSettings)
	s.Renderer.Bind(state.PageHelp, s.bindHelp)
	s.Renderer.Start()

	if s.audit != nil {
		s.Workflow.OnSettled(s.recordAnalysis)
		s.Forms.OnResult(s.recordAccount)
	}

	if s.noPolling {
		s.Stats.Refresh()
	} else {
		s.Stats.Start()
	}
	s.log.Info("session started", zap.String("page", string(s.Store.CurrentPage())))
}

// Package stats polls the usage counters and mirrors them into the stats
// strip of the shell.
package stats

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/diana/internal/api"
	"github.com/ziadkadry99/diana/internal/pages"
	"github.com/ziadkadry99/diana/internal/render"
	"github.com/ziadkadry99/diana/internal/view"
)

// DefaultInterval is the polling period.
const DefaultInterval = 30 * time.Second

// Fetcher loads the usage snapshot.
type Fetcher interface {
	Stats(ctx context.Context) (*api.Stats, error)
}

// Scheduler runs work on the session thread.
type Scheduler interface {
	Go(work func() func())
	Every(d time.Duration, fn func()) (stop func())
}

// Poller refreshes the stats display on a fixed interval, independent of
// navigation.
type Poller struct {
	ctx      context.Context
	fetcher  Fetcher
	sched    Scheduler
	doc      *render.Document
	interval time.Duration
	log      *zap.Logger

	stop func()
	last *api.Stats
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option { return func(p *Poller) { p.interval = d } }

// WithLogger sets the poller's logger.
func WithLogger(log *zap.Logger) Option { return func(p *Poller) { p.log = log } }

// WithContext sets the context of stats requests.
func WithContext(ctx context.Context) Option { return func(p *Poller) { p.ctx = ctx } }

// New creates a Poller drawing into doc. A nil doc only records the last
// snapshot.
func New(fetcher Fetcher, sched Scheduler, doc *render.Document, opts ...Option) *Poller {
	p := &Poller{
		ctx:      context.Background(),
		fetcher:  fetcher,
		sched:    sched,
		doc:      doc,
		interval: DefaultInterval,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start loads the stats once and then on every interval.
func (p *Poller) Start() {
	if p.stop != nil {
		return
	}
	p.Refresh()
	p.stop = p.sched.Every(p.interval, p.Refresh)
}

// Stop ends polling. Requests already issued still complete.
func (p *Poller) Stop() {
	if p.stop != nil {
		p.stop()
		p.stop = nil
	}
}

// Last returns the most recent snapshot, or nil.
func (p *Poller) Last() *api.Stats { return p.last }

// Refresh loads the stats now. Failures are logged and leave the display
// unchanged.
func (p *Poller) Refresh() {
	ctx, fetcher := p.ctx, p.fetcher
	p.sched.Go(func() func() {
		s, err := fetcher.Stats(ctx)
		return func() {
			if err != nil {
				p.log.Warn("loading stats", zap.Error(err))
				return
			}
			p.last = s
			if !p.display(s) {
				p.log.Debug("stats display absent, skipping update")
			}
		}
	})
}

// display writes s into the stats strip. It reports false when the strip is
// not part of the document.
func (p *Poller) display(s *api.Stats) bool {
	if p.doc == nil {
		return false
	}
	for _, id := range []string{pages.StatUsed, pages.StatRemaining, pages.StatType, pages.StatTypeLabel} {
		if p.doc.Find(id) == nil {
			return false
		}
	}
	v := Format(s)
	p.doc.Update(pages.StatUsed, func(n *view.Node) { n.SetText(v.Used) })
	p.doc.Update(pages.StatRemaining, func(n *view.Node) { n.SetText(v.Remaining) })
	p.doc.Update(pages.StatType, func(n *view.Node) { n.SetText(v.TypeIcon) })
	p.doc.Update(pages.StatTypeLabel, func(n *view.Node) { n.SetText(v.TypeLabel) })
	return true
}

// Display is the text of the stats strip.
type Display struct {
	Used      string
	Remaining string
	TypeIcon  string
	TypeLabel string
}

// Format renders s for display. Premium accounts have no remaining count.
func Format(s *api.Stats) Display {
	if s.IsPremium {
		return Display{Used: strconv.Itoa(s.Used), Remaining: "∞", TypeIcon: "✨", TypeLabel: "Premium"}
	}
	return Display{Used: strconv.Itoa(s.Used), Remaining: strconv.Itoa(s.Remaining), TypeIcon: "🆓", TypeLabel: "Free"}
}

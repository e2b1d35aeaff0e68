package stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ziadkadry99/diana/internal/api"
	"github.com/ziadkadry99/diana/internal/pages"
	"github.com/ziadkadry99/diana/internal/render"
	"github.com/ziadkadry99/diana/internal/state"
	"github.com/ziadkadry99/diana/internal/view"
)

type fakeFetcher struct {
	stats *api.Stats
	err   error
	calls int
}

func (f *fakeFetcher) Stats(context.Context) (*api.Stats, error) {
	f.calls++
	return f.stats, f.err
}

type inlineScheduler struct {
	interval time.Duration
	tick     func()
	stopped  bool
}

func (s *inlineScheduler) Go(work func() func()) {
	if cont := work(); cont != nil {
		cont()
	}
}

func (s *inlineScheduler) Every(d time.Duration, fn func()) func() {
	s.interval, s.tick = d, fn
	return func() { s.stopped = true }
}

func shellDoc() *render.Document {
	return render.NewDocument(pages.Shell(state.Snapshot{Theme: state.ThemeDark}))
}

func text(doc *render.Document, id string) string {
	return view.TextContent(doc.Find(id))
}

func TestStartLoadsImmediatelyAndPolls(t *testing.T) {
	f := &fakeFetcher{stats: &api.Stats{Used: 3, Remaining: 4997}}
	sched := &inlineScheduler{}
	doc := shellDoc()
	p := New(f, sched, doc)

	p.Start()
	if f.calls != 1 {
		t.Fatalf("calls after Start = %d", f.calls)
	}
	if sched.interval != 30*time.Second {
		t.Errorf("interval = %v", sched.interval)
	}
	if text(doc, pages.StatUsed) != "3" || text(doc, pages.StatRemaining) != "4997" {
		t.Errorf("display = %q / %q", text(doc, pages.StatUsed), text(doc, pages.StatRemaining))
	}
	if text(doc, pages.StatTypeLabel) != "Free" || text(doc, pages.StatType) != "🆓" {
		t.Error("free account type not shown")
	}

	f.stats = &api.Stats{Used: 4, IsPremium: true}
	sched.tick()
	if text(doc, pages.StatRemaining) != "∞" || text(doc, pages.StatTypeLabel) != "Premium" {
		t.Error("premium display not applied on tick")
	}

	p.Stop()
	if !sched.stopped {
		t.Error("Stop did not stop the ticker")
	}
}

func TestMissingDisplayIsSkipped(t *testing.T) {
	f := &fakeFetcher{stats: &api.Stats{Used: 1}}
	doc := render.NewDocument(view.El("body"))
	p := New(f, &inlineScheduler{}, doc)

	p.Refresh()
	if p.Last() == nil || p.Last().Used != 1 {
		t.Errorf("Last = %+v", p.Last())
	}
}

func TestFetchErrorKeepsDisplay(t *testing.T) {
	f := &fakeFetcher{stats: &api.Stats{Used: 2, Remaining: 8}}
	doc := shellDoc()
	p := New(f, &inlineScheduler{}, doc)
	p.Refresh()

	f.stats, f.err = nil, &api.FetchError{Op: "loading stats", Err: errors.New("offline")}
	p.Refresh()
	if text(doc, pages.StatUsed) != "2" {
		t.Errorf("display changed after a failed poll: %q", text(doc, pages.StatUsed))
	}
}

func TestCustomInterval(t *testing.T) {
	sched := &inlineScheduler{}
	New(&fakeFetcher{stats: &api.Stats{}}, sched, nil, WithInterval(time.Second)).Start()
	if sched.interval != time.Second {
		t.Errorf("interval = %v", sched.interval)
	}
}

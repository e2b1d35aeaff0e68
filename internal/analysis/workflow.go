package analysis

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/diana/internal/api"
	"github.com/ziadkadry99/diana/internal/notify"
	"github.com/ziadkadry99/diana/internal/pages"
	"github.com/ziadkadry99/diana/internal/progress"
	"github.com/ziadkadry99/diana/internal/render"
	"github.com/ziadkadry99/diana/internal/view"
)

// ErrInFlight is returned by Submit while a submission is pending.
var ErrInFlight = errors.New("analysis already in progress")

// ErrReading is returned by Submit while a chosen file is still being read.
var ErrReading = errors.New("file is still being read")

// Predictor submits an image for classification.
type Predictor interface {
	Predict(ctx context.Context, name, mimeType string, data io.Reader) (*api.Prediction, error)
}

// Notifier shows toasts.
type Notifier interface {
	Enqueue(message string, kind notify.Kind) string
}

// Async runs work off the session thread and applies the continuation it
// returns back on it.
type Async interface {
	Go(work func() func())
}

// Refresher reloads the stats display.
type Refresher interface {
	Refresh()
}

// Outcome is reported once per settled submission.
type Outcome struct {
	Name       string
	Status     Status
	Prediction *api.Prediction
	Category   Category
	Message    string
	Err        error
}

// Workflow is the upload, validate, submit and display pipeline. All methods
// must be called on the session thread.
//
// Every file read and submission captures the current generation. Reset, a
// new file choice and leaving the home page advance it, and a completion
// carrying an older generation is discarded.
type Workflow struct {
	ctx       context.Context
	predictor Predictor
	async     Async
	notifier  Notifier
	indicator progress.Indicator
	stats     Refresher
	log       *zap.Logger

	doc       *render.Document
	status    Status
	candidate *Candidate
	reading   bool
	gen       uint64
	settled   []func(Outcome)
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithNotifier sets where toasts go.
func WithNotifier(n Notifier) Option { return func(w *Workflow) { w.notifier = n } }

// WithIndicator sets the progress indicator shown while analyzing.
func WithIndicator(ind progress.Indicator) Option { return func(w *Workflow) { w.indicator = ind } }

// WithStats sets the stats display refreshed after a successful analysis.
func WithStats(r Refresher) Option { return func(w *Workflow) { w.stats = r } }

// WithLogger sets the workflow's logger.
func WithLogger(log *zap.Logger) Option { return func(w *Workflow) { w.log = log } }

// WithContext sets the context of prediction requests.
func WithContext(ctx context.Context) Option { return func(w *Workflow) { w.ctx = ctx } }

// New creates a Workflow. Until Bind is called it runs headless: state and
// outcomes are tracked but nothing is drawn.
func New(predictor Predictor, async Async, opts ...Option) *Workflow {
	w := &Workflow{
		ctx:       context.Background(),
		predictor: predictor,
		async:     async,
		notifier:  nopNotifier{},
		indicator: progress.Nop{},
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// OnSettled registers fn to receive every settled submission.
func (w *Workflow) OnSettled(fn func(Outcome)) {
	w.settled = append(w.settled, fn)
}

// Status returns the current state.
func (w *Workflow) Status() Status { return w.status }

// Candidate returns the selected file, or nil.
func (w *Workflow) Candidate() *Candidate { return w.candidate }

// Bind attaches the workflow to a freshly rendered home page. The workflow
// starts over in Empty; leaving the page discards pending work.
func (w *Workflow) Bind(doc *render.Document, scope *render.Scope) {
	w.doc = doc
	w.gen++
	w.status = Empty
	w.candidate = nil
	w.reading = false

	doc.On(pages.BrowseBtn, view.Click, func(view.Payload) { doc.Command(render.CommandOpenPicker) })
	doc.On(pages.UploadZone, view.Click, func(view.Payload) { doc.Command(render.CommandOpenPicker) })
	doc.On(pages.UploadZone, view.DragOver, func(view.Payload) { w.highlight(true) })
	doc.On(pages.UploadZone, view.DragLeave, func(view.Payload) { w.highlight(false) })
	doc.On(pages.UploadZone, view.Drop, func(p view.Payload) {
		w.highlight(false)
		if len(p.Files) > 0 {
			w.Drop(p.Files[0])
		}
	})
	doc.On(pages.FileInput, view.Change, func(p view.Payload) {
		if len(p.Files) > 0 {
			w.Choose(p.Files[0])
		}
	})
	doc.On(pages.AnalyzeBtn, view.Click, func(view.Payload) { _ = w.Submit() })
	doc.On(pages.ResetBtn, view.Click, func(view.Payload) { w.Reset() })

	scope.OnExit(func() {
		if w.status == Analyzing {
			w.indicator.Stop()
		}
		w.gen++
		w.status = Empty
		w.candidate = nil
		w.reading = false
		w.doc = nil
	})
}

// Drop accepts a dropped file if its declared type is an image.
func (w *Workflow) Drop(f view.File) {
	if !strings.HasPrefix(f.Type, "image/") {
		w.toast("❌ Please drop an image", notify.KindError)
		return
	}
	w.Choose(f)
}

// Choose reads f and makes it the candidate. The read is asynchronous; a
// failed read leaves the workflow Empty. The previous candidate is dropped
// at once, so nothing can be submitted until the read completes.
func (w *Workflow) Choose(f view.File) {
	if w.status == Analyzing {
		w.indicator.Stop()
		w.status = Selected
		w.setContent(pages.ResultPanel, pages.WaitingPanel())
	}
	w.gen++
	gen := w.gen
	w.candidate = nil
	w.reading = true
	w.setAnalyzeButton(false, pages.AnalyzeLabel)
	w.log.Debug("file chosen", zap.String("name", f.Name), zap.String("type", f.Type), zap.Int64("size", f.Size))

	w.async.Go(func() func() {
		data, err := readFile(f)
		return func() {
			if gen != w.gen {
				return
			}
			w.reading = false
			if err != nil {
				w.log.Warn("reading file", zap.String("name", f.Name), zap.Error(err))
				w.toEmpty()
				w.toast("❌ Unable to read the file", notify.KindError)
				return
			}
			size := f.Size
			if data != nil && size <= 0 {
				size = int64(len(data))
			}
			w.candidate = &Candidate{Name: f.Name, MimeType: f.Type, Size: size, Data: data}
			w.status = Selected
			w.showPreview()
		}
	})
}

// readFile loads f unless its declared size already exceeds MaxFileSize.
func readFile(f view.File) ([]byte, error) {
	if f.Size > MaxFileSize {
		return nil, nil
	}
	if f.Open == nil {
		return nil, fmt.Errorf("file %q cannot be opened", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(io.LimitReader(rc, MaxFileSize+1))
}

// Submit validates the candidate and sends it. A validation failure is shown
// as a toast, returned, and leaves the state unchanged.
func (w *Workflow) Submit() error {
	if w.status == Analyzing {
		return ErrInFlight
	}
	if w.reading {
		return ErrReading
	}
	c := w.candidate
	err := Validate(c)
	if err == nil && int64(len(c.Data)) > MaxFileSize {
		// The declared size understated the content.
		err = Validate(&Candidate{Size: int64(len(c.Data)), MimeType: c.MimeType})
	}
	if err != nil {
		w.toast("❌ "+err.Error(), notify.KindError)
		return err
	}

	w.gen++
	gen := w.gen
	w.status = Analyzing
	w.setAnalyzeButton(false, pages.AnalyzingLabel)
	w.setContent(pages.ResultPanel, pages.AnalyzingPanel())
	w.indicator.Start("Analyzing " + c.Name)
	w.log.Info("submitting", zap.String("name", c.Name), zap.Int64("size", c.Size))

	ctx, predictor := w.ctx, w.predictor
	w.async.Go(func() func() {
		pred, err := predictor.Predict(ctx, c.Name, c.MimeType, bytes.NewReader(c.Data))
		return func() {
			if gen != w.gen {
				w.log.Debug("discarding stale completion", zap.String("name", c.Name))
				return
			}
			w.indicator.Stop()
			w.setAnalyzeButton(true, pages.AnalyzeLabel)
			if err != nil {
				w.fail(c, err)
				return
			}
			w.succeed(c, pred)
		}
	})
	return nil
}

func (w *Workflow) succeed(c *Candidate, pred *api.Prediction) {
	w.status = Succeeded
	category := Categorize(pred)
	w.log.Info("analysis complete",
		zap.String("name", c.Name),
		zap.String("prediction", pred.Prediction),
		zap.Float64("confidence", pred.Confidence),
		zap.String("category", string(category)))
	w.setContent(pages.ResultPanel, pages.ResultView(Present(pred)))
	w.toast("✅ Analysis complete!", notify.KindSuccess)
	if w.stats != nil {
		w.stats.Refresh()
	}
	w.settle(Outcome{Name: c.Name, Status: Succeeded, Prediction: pred, Category: category})
}

func (w *Workflow) fail(c *Candidate, err error) {
	w.status = Failed
	msg := FailureMessage(err)
	toast := msg
	var fe *api.FetchError
	if errors.As(err, &fe) {
		toast = ConnectionToast
	}
	w.log.Warn("analysis failed", zap.String("name", c.Name), zap.Error(err))
	w.setContent(pages.ResultPanel, pages.ErrorPanel(msg))
	w.toast("❌ "+toast, notify.KindError)
	w.settle(Outcome{Name: c.Name, Status: Failed, Message: msg, Err: err})
}

// Reset returns to Empty from any state and restores the initial prompts.
// A pending submission is discarded.
func (w *Workflow) Reset() {
	if w.status == Analyzing {
		w.indicator.Stop()
	}
	w.toEmpty()
	w.toast("🔄 Interface reset", notify.KindInfo)
}

func (w *Workflow) toEmpty() {
	w.gen++
	w.status = Empty
	w.candidate = nil
	w.reading = false
	w.update(pages.Preview, func(n *view.Node) {
		n.Remove("src")
		n.SetFlag("hidden", true)
	})
	w.highlight(false)
	w.setContent(pages.UploadText, pages.UploadPrompt()...)
	w.update(pages.UploadText, func(n *view.Node) { n.SetFlag("hidden", false) })
	w.setAnalyzeButton(false, pages.AnalyzeLabel)
	w.setContent(pages.ResultPanel, pages.WaitingPanel())
}

func (w *Workflow) showPreview() {
	if w.doc == nil {
		return
	}
	c := w.candidate
	if c.Data != nil && c.PreviewURL == "" {
		c.PreviewURL = "data:" + c.MimeType + ";base64," + base64.StdEncoding.EncodeToString(c.Data)
	}
	w.update(pages.Preview, func(n *view.Node) {
		if c.PreviewURL != "" {
			n.Set("src", c.PreviewURL)
		} else {
			n.Remove("src")
		}
		n.SetFlag("hidden", false)
	})
	w.update(pages.UploadText, func(n *view.Node) { n.SetFlag("hidden", true) })
	w.setAnalyzeButton(true, pages.AnalyzeLabel)
}

func (w *Workflow) highlight(on bool) {
	w.update(pages.UploadZone, func(n *view.Node) {
		if on {
			n.AddClass("dragover")
		} else {
			n.RemoveClass("dragover")
		}
	})
}

func (w *Workflow) setAnalyzeButton(enabled bool, label string) {
	w.update(pages.AnalyzeBtn, func(n *view.Node) {
		n.SetFlag("disabled", !enabled)
		n.SetText(label)
	})
}

// update and setContent skip silently when no page is bound or the element
// is gone.
func (w *Workflow) update(id string, fn func(*view.Node)) {
	if w.doc != nil {
		w.doc.Update(id, fn)
	}
}

func (w *Workflow) setContent(id string, children ...*view.Node) {
	if w.doc != nil {
		w.doc.SetContent(id, children...)
	}
}

func (w *Workflow) toast(msg string, kind notify.Kind) {
	w.notifier.Enqueue(msg, kind)
}

func (w *Workflow) settle(o Outcome) {
	for _, fn := range w.settled {
		fn(o)
	}
}

type nopNotifier struct{}

func (nopNotifier) Enqueue(string, notify.Kind) string { return "" }

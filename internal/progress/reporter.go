package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Indicator shows indeterminate progress while a request is in flight.
type Indicator interface {
	Start(label string)
	Stop()
}

// NewIndicator returns a CIIndicator if the CI environment variable is set,
// or a TerminalIndicator otherwise.
func NewIndicator(w io.Writer) Indicator {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIIndicator{w: w}
	}
	return &TerminalIndicator{w: w}
}

// TerminalIndicator displays a spinner in the terminal.
type TerminalIndicator struct {
	w    io.Writer
	mu   sync.Mutex
	bar  *progressbar.ProgressBar
	quit chan struct{}
	done chan struct{}
}

func (r *TerminalIndicator) Start(label string) {
	r.Stop()

	r.mu.Lock()
	defer r.mu.Unlock()
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionClearOnFinish(),
	)
	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = bar.Add(1)
			case <-quit:
				return
			}
		}
	}()
	r.bar, r.quit, r.done = bar, quit, done
}

func (r *TerminalIndicator) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bar == nil {
		return
	}
	close(r.quit)
	<-r.done
	_ = r.bar.Finish()
	r.bar, r.quit, r.done = nil, nil, nil
}

// CIIndicator prints one line per state change, suitable for CI logs.
type CIIndicator struct {
	w       io.Writer
	started time.Time
	label   string
}

func (r *CIIndicator) Start(label string) {
	r.started = time.Now()
	r.label = label
	fmt.Fprintf(r.w, "%s...\n", label)
}

func (r *CIIndicator) Stop() {
	if r.label == "" {
		return
	}
	fmt.Fprintf(r.w, "%s done in %s\n", r.label, time.Since(r.started).Round(time.Millisecond))
	r.label = ""
}

// Nop is an Indicator that shows nothing.
type Nop struct{}

func (Nop) Start(string) {}
func (Nop) Stop()        {}

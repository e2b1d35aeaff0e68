package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/diana/internal/analysis"
	"github.com/ziadkadry99/diana/internal/api"
	"github.com/ziadkadry99/diana/internal/app"
	"github.com/ziadkadry99/diana/internal/progress"
	"github.com/ziadkadry99/diana/internal/view"
	"github.com/ziadkadry99/diana/internal/walker"
)

var (
	analyzeJSON    bool
	analyzeExclude []string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|glob>...",
	Short: "Classify one or more images",
	Long: `Submits each image to the classification service and prints the
predicted class, the confidence and the per-class probabilities.
Arguments may be files, directories (searched recursively for images) or
doublestar globs such as "scans/**/*.png".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := walker.Expand(args, walker.Config{Exclude: analyzeExclude})
		if err != nil {
			return err
		}

		rt, err := openRuntime(false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		var indicator progress.Indicator = progress.Nop{}
		if !analyzeJSON {
			indicator = progress.NewIndicator(os.Stderr)
		}
		sess, stop := rt.startSession(ctx, app.Options{NoPolling: true, Indicator: indicator})
		defer stop()

		settled := make(chan analysis.Outcome, 1)
		_ = sess.Loop.Do(func() {
			sess.Workflow.OnSettled(func(o analysis.Outcome) {
				select {
				case settled <- o:
				default:
				}
			})
		})

		var reports []analyzeReport
		failed := 0
		for _, fi := range files {
			o := analyzeFile(ctx, sess, fileFor(fi), settled)
			if o.Status != analysis.Succeeded {
				failed++
			}
			r := newAnalyzeReport(fi, o)
			if analyzeJSON {
				reports = append(reports, r)
			} else {
				r.print(cmd.OutOrStdout())
			}
			if ctx.Err() != nil {
				break
			}
		}

		if ctx.Err() == nil {
			// Flush the audit trail and the final stats refresh.
			sess.Loop.Wait()
		}

		if analyzeJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(reports); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d analyses failed", failed, len(files))
		}
		return nil
	},
}

// analyzeFile drives one file through the workflow the way the page would:
// choose, then submit, then wait for the outcome.
func analyzeFile(ctx context.Context, sess *app.Session, f view.File, settled <-chan analysis.Outcome) analysis.Outcome {
	failure := func(err error) analysis.Outcome {
		return analysis.Outcome{Name: f.Name, Status: analysis.Failed, Message: err.Error(), Err: err}
	}

	if err := sess.Loop.Do(func() { sess.Workflow.Choose(f) }); err != nil {
		return failure(err)
	}
	sess.Loop.Wait()

	var submitErr error
	var status analysis.Status
	if err := sess.Loop.Do(func() {
		status = sess.Workflow.Status()
		if status == analysis.Empty {
			return
		}
		submitErr = sess.Workflow.Submit()
	}); err != nil {
		return failure(err)
	}
	if status == analysis.Empty {
		return failure(fmt.Errorf("unable to read the file"))
	}
	if submitErr != nil {
		return failure(submitErr)
	}

	select {
	case o := <-settled:
		return o
	case <-ctx.Done():
		return failure(ctx.Err())
	}
}

// fileFor describes a local file the way a browser file picker would.
func fileFor(fi walker.FileInfo) view.File {
	path := fi.Path
	return view.File{
		Name: fi.Name,
		Type: fi.MediaType,
		Size: fi.Size,
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

type analyzeReport struct {
	File       string          `json:"file"`
	SHA256     string          `json:"sha256,omitempty"`
	Status     string          `json:"status"`
	Category   string          `json:"category,omitempty"`
	Prediction *api.Prediction `json:"prediction,omitempty"`
	Error      string          `json:"error,omitempty"`
}

func newAnalyzeReport(fi walker.FileInfo, o analysis.Outcome) analyzeReport {
	r := analyzeReport{File: fi.Path, SHA256: fi.ContentHash, Status: o.Status.String()}
	if o.Status == analysis.Succeeded {
		r.Category = string(o.Category)
		r.Prediction = o.Prediction
		return r
	}
	r.Error = o.Message
	if r.Error == "" && o.Err != nil {
		r.Error = o.Err.Error()
	}
	return r
}

func (r analyzeReport) print(w io.Writer) {
	if r.Prediction == nil {
		fmt.Fprintf(w, "❌ %s: %s\n", r.File, r.Error)
		return
	}
	res := analysis.Present(r.Prediction)
	fmt.Fprintf(w, "%s %s: %s (confidence %s, %s)\n", res.Icon, r.File, res.Label, res.Confidence, r.Category)
	for _, p := range r.Prediction.Probabilities {
		fmt.Fprintf(w, "   %-12s %7.2f%% %s\n", p.Class, p.Percent, bar(p.Percent))
	}
}

// bar draws a percentage as a 20 cell gauge.
func bar(percent float64) string {
	n := int(percent/5 + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 20 {
		n = 20
	}
	return strings.Repeat("█", n) + strings.Repeat("░", 20-n)
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print results as JSON")
	analyzeCmd.Flags().StringSliceVar(&analyzeExclude, "exclude", nil, "glob patterns of files to skip")
	rootCmd.AddCommand(analyzeCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/diana/internal/audit"
)

var (
	historyLimit  int
	historyAction string
	historyJSON   bool
	historyPrune  time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the local audit trail of analyses and account actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()

		if historyPrune > 0 {
			n, err := rt.audit.DeleteBefore(ctx, time.Now().Add(-historyPrune))
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Pruned %d entries older than %s\n", n, historyPrune)
		}

		entries, err := rt.audit.Query(ctx, audit.QueryFilter{
			Action: audit.Action(historyAction),
			Limit:  historyLimit,
		})
		if err != nil {
			return err
		}

		if historyJSON {
			if entries == nil {
				entries = []audit.Entry{}
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		if len(entries) == 0 {
			fmt.Println("No history yet.")
			return nil
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tACTION\tSUBJECT\tRESULT")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				e.Timestamp.Local().Format("2006-01-02 15:04"), e.Action, e.Subject, entryResult(e))
		}
		return tw.Flush()
	},
}

func entryResult(e audit.Entry) string {
	switch {
	case e.Prediction != "":
		return fmt.Sprintf("%s (%.1f%%, %s)", e.Prediction, e.Confidence, e.Category)
	case e.Detail != "":
		return e.Detail
	}
	return "-"
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
	historyCmd.Flags().StringVar(&historyAction, "action", "", "only show entries with this action (e.g. analysis_failed)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "print entries as JSON")
	historyCmd.Flags().DurationVar(&historyPrune, "prune", 0, "delete entries older than this duration before listing (e.g. 720h)")
	rootCmd.AddCommand(historyCmd)
}

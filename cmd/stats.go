package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/diana/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show analysis usage and remaining quota",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(false)
		if err != nil {
			return err
		}
		defer rt.Close()

		s, err := rt.client.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching stats: %w", err)
		}
		d := stats.Format(s)
		fmt.Printf("Analyses used: %s\n", d.Used)
		fmt.Printf("Remaining:     %s\n", d.Remaining)
		fmt.Printf("Account type:  %s %s\n", d.TypeIcon, d.TypeLabel)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

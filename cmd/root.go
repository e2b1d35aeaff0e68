package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	ephemeral bool
)

var rootCmd = &cobra.Command{
	Use:   "diana",
	Short: "Client for the DIANA medical image classification service",
	Long: `diana submits medical images to a DIANA classification service and
shows the probability-ranked result. It runs headless from the command
line or serves a live browser shell with the full client.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".diana.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep the account, theme and history in memory and write nothing to the data dir")
}

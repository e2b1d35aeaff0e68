package cmd

import (
	"github.com/spf13/cobra"
	"github.com/ziadkadry99/diana/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize diana configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the service URL, data directory and logging, and writes a .diana.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

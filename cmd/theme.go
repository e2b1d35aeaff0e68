package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/diana/internal/state"
)

var themeCmd = &cobra.Command{
	Use:       "theme [toggle]",
	Short:     "Show or toggle the stored display theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(false)
		if err != nil {
			return err
		}
		defer rt.Close()

		store := state.NewStore(rt.prefs, state.WithLogger(rt.log.Named("store")))
		if len(args) == 1 {
			store.ToggleTheme()
		}
		fmt.Printf("Current theme: %s\n", store.Theme())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

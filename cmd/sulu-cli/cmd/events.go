package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sulu/internal/lifecycle"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the lifecycle handlers in invocation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := GetManager().Dispatcher()
		for _, kind := range lifecycle.Kinds {
			fmt.Printf("%s\n", kind)
			for i, name := range d.Registrations(kind) {
				fmt.Printf("  %d. %s\n", i+1, name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sulu/internal/application/commands"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the routes of a workspace",
	Long: `List every route of a workspace and locale. History routes are redirects
left behind by route changes in the live workspace.

Example:
  sulu-cli routes -w live`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := currentWorkspace()
		if err != nil {
			return err
		}
		routes, err := commands.NewListRoutesCommand(GetManager(), ws, locale).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(routes) == 0 {
			fmt.Println("No routes.")
			return nil
		}
		for _, r := range routes {
			kind := "canonical"
			if r.IsHistory {
				kind = "history"
			}
			fmt.Printf("%-40s  %-9s  %s\n", r.Path, kind, r.TargetID)
		}
		return nil
	},
}

var resolveCmd = &cobra.Command{
	Use:     "resolve <path>",
	Short:   "Resolve a request path to a node",
	Example: `  sulu-cli resolve /parent/child -w live`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := currentWorkspace()
		if err != nil {
			return err
		}
		result, err := commands.NewResolveCommand(GetManager(), ws, locale, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var regenerateCmd = &cobra.Command{
	Use:   "regenerate-routes",
	Short: "Recompute every route of a workspace",
	Long: `Recompute all routes of a workspace and locale, e.g. after a route
template changed. Nodes are processed in path order and committed in
batches of SULU_BATCH_SIZE.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := currentWorkspace()
		if err != nil {
			return err
		}
		result, err := commands.NewRegenerateRoutesCommand(GetManager(), ws, locale).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var cleanupTarget string

var cleanupCmd = &cobra.Command{
	Use:   "cleanup-history",
	Short: "Delete history routes",
	Long: `Delete history (redirect) routes of a workspace and locale, optionally
only those of one node.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := currentWorkspace()
		if err != nil {
			return err
		}
		result, err := commands.NewCleanupHistoryCommand(GetManager(), ws, locale, cleanupTarget).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().StringVar(&cleanupTarget, "target", "", "only remove history routes of this node")
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(regenerateCmd)
	rootCmd.AddCommand(cleanupCmd)
}

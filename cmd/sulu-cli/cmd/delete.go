package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sulu/internal/application/commands"
	"sulu/internal/domain"
)

var forceDelete bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a node and its subtree",
	Long: `Delete a node and everything below it from both workspaces, together
with their routes.

WARNING: This permanently deletes content. Use with caution.

Examples:
  sulu-cli delete <id>           # Prompts for confirmation
  sulu-cli delete <id> --force   # Skip confirmation`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		if !forceDelete {
			node, err := GetManager().Get(cmd.Context(), domain.WorkspaceDraft, id)
			if err != nil {
				return err
			}
			fmt.Printf("Are you sure you want to delete %s and its subtree? [y/N] ", node.Path)
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled")
				return nil
			}
		}

		result, err := commands.NewDeleteCommand(GetManager(), id).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "skip confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

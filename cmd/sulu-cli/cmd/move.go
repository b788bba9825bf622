package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"sulu/internal/application/commands"
)

var moveCmd = &cobra.Command{
	Use:   "move <id> [parent-id]",
	Short: "Move a node under another parent",
	Long: `Move a node and its subtree under another parent in both workspaces.
Without a parent the node moves to the root. Routes of the subtree are
recomputed; live routes that change keep redirecting to the new location.

Examples:
  sulu-cli move <id> <parent-id>
  sulu-cli move <id>`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := ""
		if len(args) == 2 {
			dest = args[1]
		}
		result, err := commands.NewMoveCommand(GetManager(), args[0], dest).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var copyCmd = &cobra.Command{
	Use:   "copy <id> [parent-id]",
	Short: "Copy a node and its subtree",
	Long: `Copy a node and its subtree under another parent. Copies get new IDs,
start unpublished and get their own routes.

Example:
  sulu-cli copy <id> <parent-id>`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := ""
		if len(args) == 2 {
			dest = args[1]
		}
		result, err := commands.NewCopyCommand(GetManager(), args[0], dest).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a node",
	Long: `Change the node name (its last path segment) in both workspaces.
Routes are not affected by names.

Example:
  sulu-cli rename <id> "company"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewRenameCommand(GetManager(), args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var reorderCmd = &cobra.Command{
	Use:   "reorder <id> <position>",
	Short: "Place a node at a position among its siblings",
	Long: `Place a node at a position (starting at 1) among its siblings.
The live siblings follow the same order.

Example:
  sulu-cli reorder <id> 1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position: %s", args[1])
		}
		result, err := commands.NewReorderCommand(GetManager(), args[0], position).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		for i, n := range result.Siblings {
			fmt.Printf("  %d. %s %s\n", i+1, n.ID, n.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(copyCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(reorderCmd)
}

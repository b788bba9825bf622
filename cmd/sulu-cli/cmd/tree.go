package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sulu/internal/application"
	"sulu/internal/application/commands"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display a workspace tree",
	Long: `Display the tree of a workspace with stage and route per node.

Examples:
  sulu-cli tree
  sulu-cli tree -w live -l de`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := currentWorkspace()
		if err != nil {
			return err
		}
		root, err := commands.NewTreeCommand(GetManager(), ws, locale).Execute(cmd.Context())
		if err != nil {
			return err
		}
		for _, child := range root.Children {
			printTree(child, 0)
		}
		return nil
	},
}

func printTree(node *application.TreeNode, depth int) {
	indent := strings.Repeat("  ", depth)
	title := node.Title
	if title == "" {
		title = "(" + node.Name + ")"
	}
	fmt.Printf("%s%s  %s  [%s]", indent, node.ID, title, node.Stage.Label())
	if node.RoutePath != "" {
		fmt.Printf("  %s", node.RoutePath)
	}
	fmt.Println()

	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sulu/internal/application/commands"
	"sulu/internal/domain"
)

var (
	updateTitle   string
	updateSegment string
	updateProps   []string
	updatePublish bool
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit the content of a draft node",
	Long: `Edit title, route segment or properties of one localization. A locale the
node does not have yet is added (a title is then required).

Passing an empty --segment returns the route to the type's template.

Examples:
  sulu-cli update <id> --title "About"
  sulu-cli update <id> --segment /parent-child --publish
  sulu-cli update <id> -l de --title "Über uns"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		node, err := GetManager().Get(cmd.Context(), domain.WorkspaceDraft, args[0])
		if err != nil {
			return err
		}
		props, err := parseProperties(node.Type, updateProps)
		if err != nil {
			return err
		}

		c := commands.NewUpdateCommand(GetManager(), args[0], locale)
		if cmd.Flags().Changed("title") {
			c.Title = &updateTitle
		}
		if cmd.Flags().Changed("segment") {
			c.Segment = &updateSegment
		}
		c.Properties = props
		c.Publish = updatePublish

		result, err := c.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "new title")
	updateCmd.Flags().StringVar(&updateSegment, "segment", "", "explicit route segment")
	updateCmd.Flags().StringArrayVarP(&updateProps, "prop", "p", nil, "property as name=value (repeatable)")
	updateCmd.Flags().BoolVar(&updatePublish, "publish", false, "publish in the same unit of work")
	rootCmd.AddCommand(updateCmd)
}

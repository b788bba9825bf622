package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sulu/internal/application/commands"
)

var publishCmd = &cobra.Command{
	Use:   "publish <id>",
	Short: "Publish a localization to the live workspace",
	Long: `Copy the draft content of one locale to the live workspace and assign
its live route.

Example:
  sulu-cli publish <id> -l en`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewPublishCommand(GetManager(), args[0], locale).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var unpublishCmd = &cobra.Command{
	Use:   "unpublish <id>",
	Short: "Withdraw a localization from the live workspace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewUnpublishCommand(GetManager(), args[0], locale).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(unpublishCmd)
}

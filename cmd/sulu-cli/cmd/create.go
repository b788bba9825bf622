package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sulu/internal/application/commands"
	"sulu/internal/domain"
)

var (
	createParent  string
	createType    string
	createSegment string
	createProps   []string
	createPublish bool
)

var createCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a draft node",
	Long: `Create a node in the draft workspace. A structural copy without content
is created in the live workspace at the same time.

Properties are given as name=value and parsed according to the content type.

Examples:
  sulu-cli create "About Us"
  sulu-cli create "Team" --parent 7c9e6679-7425-40de-944b-e07fc1f90ae7 --publish
  sulu-cli create "First Post" --type article -p author="Jane Doe"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		props, err := parseProperties(createType, createProps)
		if err != nil {
			return err
		}

		c := commands.NewCreateCommand(GetManager(), createParent, args[0])
		c.Type = createType
		c.Locale = locale
		c.Segment = createSegment
		c.Properties = props
		c.Publish = createPublish

		result, err := c.Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

// parseProperties converts name=value pairs using the field kinds of typ
func parseProperties(typ string, pairs []string) (domain.Properties, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	ct, ok := GetManager().Registry().Lookup(typ)
	if !ok {
		return nil, fmt.Errorf("unknown content type: %s", typ)
	}

	props := domain.Properties{}
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("property must be name=value, got: %s", pair)
		}
		def, ok := ct.Field(name)
		if !ok {
			return nil, fmt.Errorf("%s has no field %s", typ, name)
		}
		v, err := domain.ParseValue(def.Kind, raw)
		if err != nil {
			return nil, fmt.Errorf("property %s: %w", name, err)
		}
		props[name] = v
	}
	return props, nil
}

func init() {
	createCmd.Flags().StringVar(&createParent, "parent", "", "parent node ID (empty for the root)")
	createCmd.Flags().StringVarP(&createType, "type", "t", "page", "content type")
	createCmd.Flags().StringVar(&createSegment, "segment", "", "explicit route segment instead of the template")
	createCmd.Flags().StringArrayVarP(&createProps, "prop", "p", nil, "property as name=value (repeatable)")
	createCmd.Flags().BoolVar(&createPublish, "publish", false, "publish in the same unit of work")
	rootCmd.AddCommand(createCmd)
}

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newCatalogCommand(opts *Options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the resource catalog",
		Long: `Catalog compiles the parameters and prints the ordered host resources
(users, install, config stages). The YAML output is what apply --catalog
and node agents consume.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := compile(cmd.Context(), opts)
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "yaml":
				data, err = result.Catalog.Marshal()
			case "json":
				data, err = json.MarshalIndent(result.Catalog, "", "  ")
				data = append(data, '\n')
			default:
				return fmt.Errorf("unknown format %q: expected yaml or json", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format (yaml or json)")
	return cmd
}

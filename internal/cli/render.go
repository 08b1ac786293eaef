package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// Document names accepted by render --document.
const (
	docStormYAML  = "storm.yaml"
	docClusterXML = "cluster.xml"
)

func newRenderCommand(opts *Options) *cobra.Command {
	var (
		document  string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render storm.yaml or the logback cluster.xml",
		Long: `Render compiles the parameters and prints one document to stdout,
or writes both documents into --output-dir.`,
		Example: `  stormctl render --data common.yaml --set nimbus_host=nimbus01
  stormctl render --document cluster.xml
  stormctl render --output-dir ./out`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if document != docStormYAML && document != docClusterXML {
				return fmt.Errorf("unknown document %q: expected %s or %s", document, docStormYAML, docClusterXML)
			}

			result, err := compile(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if outputDir != "" {
				docs := map[string]string{
					docStormYAML:  result.StormYAML,
					docClusterXML: result.ClusterXML,
				}
				if err := os.MkdirAll(outputDir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				for name, content := range docs {
					if err := os.WriteFile(filepath.Join(outputDir, name), []byte(content), 0o644); err != nil {
						return fmt.Errorf("failed to write %s: %w", name, err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s and %s to %s (checksum %s)\n",
					docStormYAML, docClusterXML, outputDir, result.Checksum())
				return nil
			}

			content := result.StormYAML
			if document == docClusterXML {
				content = result.ClusterXML
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}

	cmd.Flags().StringVar(&document, "document", docStormYAML, "Document to print (storm.yaml or cluster.xml)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Write both documents into this directory")
	return cmd
}

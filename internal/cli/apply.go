package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/stormops/k8s-storm-operator-go/internal/apply"
	"github.com/stormops/k8s-storm-operator-go/internal/catalog"
	"github.com/stormops/k8s-storm-operator-go/internal/monitoring"
)

// newApplier builds the host applier; tests replace it.
var newApplier = apply.New

func newApplyCommand(opts *Options) *cobra.Command {
	var (
		dryRun      bool
		catalogFile string
		metricsFile string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply the resource catalog to this host",
		Long: `Apply compiles the parameters, or reads a catalog produced by
"stormctl catalog", and converges the host: the storm group and user,
the packages, then the data and log directories and the rendered files.
File paths are placed under --root.`,
		Example: `  stormctl apply --data /etc/storm/hiera.yaml
  stormctl apply --dry-run --root /tmp/stage
  stormctl apply --catalog catalog.yaml --metrics-file /var/lib/node_exporter/storm.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logr.FromContextOrDiscard(ctx)

			var cat *catalog.Catalog
			if catalogFile != "" {
				data, err := os.ReadFile(catalogFile)
				if err != nil {
					return fmt.Errorf("failed to read catalog: %w", err)
				}
				if cat, err = catalog.Unmarshal(data); err != nil {
					return err
				}
			} else {
				result, err := compile(ctx, opts)
				if err != nil {
					return err
				}
				cat = result.Catalog
			}

			log.Info("Applying catalog", "resources", cat.Count(), "root", opts.Root, "dryRun", dryRun)
			report, applyErr := newApplier(opts.Root, dryRun).Apply(ctx, cat)
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}

			if metricsFile != "" {
				if err := monitoring.WriteTextfile(metricsFile); err != nil {
					log.Error(err, "failed to write metrics", "path", metricsFile)
				}
			}
			return applyErr
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", opts.Root, "Prefix for every managed file path and absolute link target")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without making them")
	cmd.Flags().StringVar(&catalogFile, "catalog", "", "Apply this catalog file instead of compiling")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile collector path")
	return cmd
}

func printReport(w io.Writer, report *apply.Report) {
	verb := "changed"
	if report.DryRun {
		verb = "would change"
	}
	for _, c := range report.Changes {
		fmt.Fprintf(w, "%s: %s\n", c.Resource, c.Action)
	}
	fmt.Fprintf(w, "%d resources %s, %d unchanged\n", len(report.Changed()), verb, len(report.Unchanged))
}

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wp2csv/wp2csv/internal/db"
	"github.com/wp2csv/wp2csv/internal/export"
	"github.com/wp2csv/wp2csv/internal/logging"
	"github.com/wp2csv/wp2csv/internal/report"
	"github.com/wp2csv/wp2csv/internal/sanitize"
	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

func addExportFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", wp2csv.DefaultOutputFile,
		"CSV file to write; an existing file is replaced only after a successful export")
	cmd.Flags().StringVar(&opts.contentFormat, "content-format", "text",
		"How post_content and message are cleaned: text|html|markdown")
}

func newExportCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export WordPress content to CSV (default command)",
		Long: `Export connects to the WordPress database, checks which datasets have their
tables, runs the dataset queries and writes one CSV file.

Nothing is written when none of the selected datasets have their tables.

Examples:
  # Export everything to ./wordpress_data.csv
  wp2csv export

  # Only posts and pages, rendered as Markdown
  wp2csv export --datasets posts,pages --content-format markdown -o posts.csv

  # Use credentials from a specific env file
  wp2csv export --env-file prod.env`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}
	addExportFlags(cmd, opts)
	return cmd
}

func newLogger(cmd *cobra.Command, verbose bool) *logging.ConsoleLogger {
	return logging.New(cmd.ErrOrStderr(), verbose)
}

func newRenderer(cmd *cobra.Command) *report.Renderer {
	w := cmd.ErrOrStderr()
	f, _ := w.(*os.File)
	return report.New(w, report.DetectMode(f))
}

func connectorOptions(logger wp2csv.Logger, retries int) db.Options {
	return db.Options{
		Retries: retries,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			logger.Info("Connection attempt %d failed: %v (retrying in %s)", attempt, err, delay.Round(time.Millisecond))
		},
		Warn: logger.Info,
	}
}

func runExport(cmd *cobra.Command, opts *options) error {
	plan, err := planRun(cmd, opts)
	if err != nil {
		return err
	}
	connCfg, err := resolveConnection(opts, plan.settings)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, opts.verbose)
	logger.Verbose("Connection: %s", connCfg)
	logger.Verbose("Datasets: %v, content format: %s, output: %s",
		plan.catalog.Names(), plan.format, plan.settings.Output)

	connector, err := db.NewConnector(connCfg, connectorOptions(logger, plan.settings.ConnectRetries))
	if err != nil {
		return err
	}

	ctx, cancel := runContext(cmd, plan.settings.Timeout)
	defer cancel()

	exporter := export.NewExporter(connector, logger, export.Config{
		Output:  plan.settings.Output,
		Catalog: plan.catalog,
		Cleaner: sanitize.New(plan.format),
	})
	result, err := exporter.Run(ctx)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if opts.verbose {
		newRenderer(cmd).Export(result)
	}
	if result.Written {
		fmt.Fprintf(cmd.OutOrStdout(), "Data exported to %s successfully.\n", result.Output)
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wp2csv/wp2csv/internal/db"
	"github.com/wp2csv/wp2csv/internal/export"
)

func newProbeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Show which datasets can be exported from the database",
		Long: `Probe connects to the database and checks the tables each dataset needs,
without running any export query or writing a file.

Optional tables that are missing are listed as empty columns.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			connector, err := db.NewConnector(connCfg, connectorOptions(logger, plan.settings.ConnectRetries))
			if err != nil {
				return err
			}

			ctx, cancel := runContext(cmd, plan.settings.Timeout)
			defer cancel()

			results, err := export.Probe(ctx, connector, plan.catalog, logger)
			if err != nil {
				return fmt.Errorf("probe failed: %w", err)
			}
			newRenderer(cmd).Probe(results)
			return nil
		},
	}
}

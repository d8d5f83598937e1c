package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// options holds flag values shared by the commands of one root command.
type options struct {
	verbose        bool
	envFiles       []string
	configPath     string
	output         string
	datasets       []string
	contentFormat  string
	connectRetries int
	timeout        time.Duration
}

const rootLong = `wp2csv exports published WordPress content to a single CSV file.

Posts, pages, WooCommerce products and contact form submissions are read from
the database, stripped of markup, and merged into one table whose header is
the union of all dataset columns. A dataset is exported only when its tables
exist; the rest are skipped.

Connection settings come from the environment (or a .env file):
  DB_HOST, DB_USER, DB_PASSWORD, DB_NAME   required
  DB_PORT                                  optional, default 3306
  DB_TLS                                   optional: true|false|skip-verify|preferred
  WP2CSV_AUTH                              optional: standard|aws-iam|azure-entra|google-iam

Exit Codes:
  0  - Success (including "no data")
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Missing environment variables or invalid settings
  11 - Database connection failed
  13 - Probe or dataset query failed
  15 - CSV output could not be written`

// NewRootCmd builds the wp2csv command tree. Running the root command without
// a subcommand performs an export.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:          "wp2csv",
		Short:        "Export WordPress content to CSV",
		Long:         rootLong,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output for all commands")
	pf.StringSliceVar(&opts.envFiles, "env-file", nil,
		"Load environment variables from these files (default: ./.env if present)\n"+
			"Variables already set in the environment are not overridden")
	pf.StringVar(&opts.configPath, "config", "",
		"Settings file (default: ./"+wp2csv.ConfigFileName+" if present)")
	pf.StringSliceVar(&opts.datasets, "datasets", nil,
		"Datasets to include, comma separated (default: all)\n"+
			"Available: posts, pages, products, contacts")
	pf.IntVar(&opts.connectRetries, "connect-retries", wp2csv.DefaultConnectRetries,
		"Extra connection attempts on transient failures")
	pf.DurationVar(&opts.timeout, "timeout", wp2csv.DefaultTimeout,
		"Catastrophic failure protection timeout for the whole run\n"+
			"Examples: 30s, 5m, 1h30m")

	addExportFlags(root, opts)

	root.AddCommand(newExportCmd(opts), newProbeCmd(opts), newDatasetsCmd(), newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return NewRootCmd().Execute()
}

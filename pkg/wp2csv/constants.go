package wp2csv

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Export completed (or nothing to export)
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (invalid flags or arguments)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Missing environment variables or invalid settings
	ExitConnectionError = 11 // Failed to connect to database
	ExitQueryFailed     = 13 // Probe or dataset query failed
	ExitWriteFailed     = 15 // CSV output could not be written
)

// Environment variables holding the connection parameters.
const (
	EnvHost     = "DB_HOST"
	EnvPort     = "DB_PORT"
	EnvUser     = "DB_USER"
	EnvPassword = "DB_PASSWORD"
	EnvDatabase = "DB_NAME"
	EnvTLS      = "DB_TLS"
	EnvTLSCA    = "DB_TLS_CA"

	EnvAuthMethod     = "WP2CSV_AUTH"
	EnvGoogleInstance = "WP2CSV_GOOGLE_INSTANCE"
)

const (
	// DefaultOutputFile is written to the current working directory.
	DefaultOutputFile = "wordpress_data.csv"

	// DefaultPort is the MySQL server port used when DB_PORT is unset.
	DefaultPort = 3306

	// DefaultTimeout bounds a whole export run. It protects against hung
	// connections, not slow queries.
	DefaultTimeout = 3 * time.Minute

	// DefaultConnectRetries is zero: a failed connection is fatal on the first attempt.
	DefaultConnectRetries = 0

	// DefaultRetryInitialDelay is the delay before the first connect retry.
	DefaultRetryInitialDelay = 200 * time.Millisecond

	// DefaultRetryMaxDelay caps the delay between connect retries.
	DefaultRetryMaxDelay = 10 * time.Second

	// ConfigFileName is the optional settings file looked up in the working directory.
	ConfigFileName = "wp2csv.yaml"
)

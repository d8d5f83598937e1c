package wp2csv

import (
	"errors"
	"strings"
)

// Sentinel errors for the failure classes of an export run.
// Callers distinguish them with errors.Is().
//
//	result, err := exporter.Run(ctx)
//	if errors.Is(err, wp2csv.ErrConnectionFailed) {
//	    // database unreachable or credentials rejected
//	}
var (
	// ErrInvalidConfig indicates missing environment variables or invalid settings.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the database could not be reached or authenticated.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrQueryFailed indicates a probe or dataset query failed.
	ErrQueryFailed = errors.New("query failed")

	// ErrWriteFailed indicates the CSV file could not be written.
	ErrWriteFailed = errors.New("write failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")
)

// usageErrorPatterns are cobra/pflag messages for command line misuse.
var usageErrorPatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrQueryFailed):
		return ExitQueryFailed
	case errors.Is(err, ErrWriteFailed):
		return ExitWriteFailed
	}

	errStr := err.Error()
	for _, p := range usageErrorPatterns {
		if strings.HasPrefix(errStr, p) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

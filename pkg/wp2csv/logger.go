package wp2csv

// Logger receives progress and diagnostics from an export run.
// Messages use fmt verbs; implementations must tolerate concurrent calls.
type Logger interface {
	// Verbose is for diagnostics shown only with --verbose.
	Verbose(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

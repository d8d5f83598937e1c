// Package logging implements wp2csv.Logger.
//
// ConsoleLogger prints one line per entry to a writer (stderr in the CLI),
// tagging verbose and error lines. Recorder keeps entries in memory so tests
// can assert on what an export run reported. Discard drops everything.
package logging

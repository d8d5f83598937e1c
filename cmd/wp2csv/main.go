// Command wp2csv exports WordPress content from MySQL to a CSV file.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/wp2csv/wp2csv/internal/cli"
	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

func main() {
	os.Exit(run())
}

// run executes the CLI and maps its outcome to a process exit code.
// A panic is reported with its stack and exits with wp2csv.ExitPanic.
func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "wp2csv: internal error: %v\n%s", r, debug.Stack())
			code = wp2csv.ExitPanic
		}
	}()

	if os.Getenv("WP2CSV_TEST_PANIC") == "1" {
		panic("WP2CSV_TEST_PANIC is set")
	}
	return wp2csv.ExitCodeForError(cli.Execute())
}

package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// Level classifies a log entry.
type Level int

const (
	LevelVerbose Level = iota
	LevelInfo
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelInfo:
		return "info"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

func (l Level) tag() string {
	switch l {
	case LevelVerbose:
		return "[VERBOSE] "
	case LevelError:
		return "[ERROR] "
	default:
		return ""
	}
}

// format leaves a message without arguments untouched so that a literal
// percent sign survives.
func format(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// ConsoleLogger writes tagged lines to an io.Writer. Verbose entries are
// dropped unless verbose output was requested.
type ConsoleLogger struct {
	mu  sync.Mutex
	out io.Writer
	min Level
}

// New returns a ConsoleLogger writing to w.
func New(w io.Writer, verbose bool) *ConsoleLogger {
	min := LevelInfo
	if verbose {
		min = LevelVerbose
	}
	return &ConsoleLogger{out: w, min: min}
}

func (l *ConsoleLogger) Verbose(msg string, args ...any) { l.log(LevelVerbose, msg, args) }
func (l *ConsoleLogger) Info(msg string, args ...any)    { l.log(LevelInfo, msg, args) }
func (l *ConsoleLogger) Error(msg string, args ...any)   { l.log(LevelError, msg, args) }

func (l *ConsoleLogger) log(level Level, msg string, args []any) {
	if level < l.min {
		return
	}
	line := level.tag() + format(msg, args) + "\n"
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.out, line)
}

type discard struct{}

func (discard) Verbose(string, ...any) {}
func (discard) Info(string, ...any)    {}
func (discard) Error(string, ...any)   {}

// Discard is a Logger that drops every entry.
var Discard wp2csv.Logger = discard{}

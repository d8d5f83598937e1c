package logging

import (
	"strings"
	"sync"
)

// Entry is one recorded log call.
type Entry struct {
	Level   Level
	Message string
}

// Recorder is a Logger that keeps every entry, verbose ones included.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Verbose(msg string, args ...any) { r.add(LevelVerbose, msg, args) }
func (r *Recorder) Info(msg string, args ...any)    { r.add(LevelInfo, msg, args) }
func (r *Recorder) Error(msg string, args ...any)   { r.add(LevelError, msg, args) }

func (r *Recorder) add(level Level, msg string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: format(msg, args)})
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Messages returns the messages recorded at level, in order.
func (r *Recorder) Messages(level Level) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Contains reports whether any entry at level contains substr.
func (r *Recorder) Contains(level Level, substr string) bool {
	for _, m := range r.Messages(level) {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

package wp2csv_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, wp2csv.ExitSuccess},
		{"unknown flag", errors.New("unknown flag: --foo"), wp2csv.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x' in -x"), wp2csv.ExitUsageError},
		{"accepts args", errors.New("accepts 0 arg(s), received 1"), wp2csv.ExitUsageError},
		{"invalid argument", errors.New("invalid argument \"abc\" for \"--port\""), wp2csv.ExitUsageError},
		{"invalid config", fmt.Errorf("DB_HOST: %w", wp2csv.ErrInvalidConfig), wp2csv.ExitConfigError},
		{"unsupported auth", fmt.Errorf("x: %w", wp2csv.ErrUnsupportedAuthMethod), wp2csv.ExitConfigError},
		{"connection failed", fmt.Errorf("ping: %w", wp2csv.ErrConnectionFailed), wp2csv.ExitConnectionError},
		{"raw connection refused", errors.New("dial tcp 127.0.0.1:3306: connection refused"), wp2csv.ExitConnectionError},
		{"query failed", fmt.Errorf("posts: %w", wp2csv.ErrQueryFailed), wp2csv.ExitQueryFailed},
		{"write failed", fmt.Errorf("rename: %w", wp2csv.ErrWriteFailed), wp2csv.ExitWriteFailed},
		{"general error", errors.New("something went wrong"), wp2csv.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wp2csv.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type stubClassifier struct{ transient bool }

func (s stubClassifier) IsTransient(error) bool { return s.transient }

func fastRetrier(retries int, transient bool) Retrier {
	return Retrier{
		Classifier: stubClassifier{transient: transient},
		Strategy:   Backoff{Retries: retries, Initial: time.Millisecond, Max: time.Millisecond},
	}
}

// failing returns an op that fails n times with err before succeeding.
func failing(n int, err error, calls *int) func(context.Context) error {
	return func(context.Context) error {
		*calls++
		if *calls <= n {
			return err
		}
		return nil
	}
}

func TestRetrier_Do(t *testing.T) {
	refused := errors.New("connection refused")

	tests := []struct {
		name      string
		retries   int
		transient bool
		failures  int
		wantErr   bool
		wantCalls int
	}{
		{"first attempt succeeds", 3, true, 0, false, 1},
		{"zero retries runs once", 0, true, 5, true, 1},
		{"transient until success", 3, true, 2, false, 3},
		{"fatal error not retried", 3, false, 5, true, 1},
		{"attempts exhausted", 2, true, 5, true, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := fastRetrier(tt.retries, tt.transient).Do(context.Background(), failing(tt.failures, refused, &calls))
			if tt.wantErr {
				assert.ErrorIs(t, err, refused)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestRetrier_OnRetryCountsFromOne(t *testing.T) {
	var seen []int
	r := fastRetrier(3, true)
	r.OnRetry = func(attempt int, err error, delay time.Duration) {
		seen = append(seen, attempt)
		assert.Equal(t, time.Millisecond, delay)
	}

	calls := 0
	err := r.Do(context.Background(), failing(2, errors.New("connection reset"), &calls))

	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestRetrier_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := fastRetrier(5, true).Do(ctx, failing(10, errors.New("connection refused"), &calls))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetrier_UnlimitedStopsOnSuccess(t *testing.T) {
	calls := 0
	err := fastRetrier(-1, true).Do(context.Background(), failing(4, errors.New("bad connection"), &calls))

	assert.NoError(t, err)
	assert.Equal(t, 5, calls)
}

func TestForConnect(t *testing.T) {
	r := ForConnect(2, nil)
	assert.IsType(t, &MySQLErrorClassifier{}, r.Classifier)
	assert.Equal(t, 2, r.Strategy.MaxAttempts())
}

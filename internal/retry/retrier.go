package retry

import (
	"context"
	"time"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// Retrier re-runs an operation while it fails with transient errors.
type Retrier struct {
	Classifier wp2csv.ErrorClassifier
	Strategy   wp2csv.BackoffStrategy

	// OnRetry is called before each wait. Optional.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// ForConnect returns a Retrier for MySQL connection attempts.
func ForConnect(retries int, onRetry func(attempt int, err error, delay time.Duration)) Retrier {
	return Retrier{
		Classifier: NewMySQLErrorClassifier(),
		Strategy:   ConnectBackoff(retries),
		OnRetry:    onRetry,
	}
}

// Do runs op at least once. The last error is returned when op fails with a
// fatal error or the strategy runs out of attempts; a cancelled context ends
// the wait with ctx.Err().
func (r Retrier) Do(ctx context.Context, op func(context.Context) error) error {
	limit := r.Strategy.MaxAttempts()
	for attempt := 0; ; attempt++ {
		err := op(ctx)
		if err == nil || !r.Classifier.IsTransient(err) {
			return err
		}
		if limit >= 0 && attempt >= limit {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := r.Strategy.NextDelay(attempt)
		if r.OnRetry != nil {
			r.OnRetry(attempt+1, err, delay)
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

var _ wp2csv.BackoffStrategy = Backoff{}

func TestBackoff_NextDelay(t *testing.T) {
	b := Backoff{Retries: 5, Initial: 100 * time.Millisecond, Max: time.Second, Factor: 2}

	want := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		time.Second,
	}
	for attempt, d := range want {
		assert.Equal(t, d, b.NextDelay(attempt), "attempt %d", attempt)
	}
	assert.Equal(t, 5, b.MaxAttempts())
}

func TestBackoff_FactorBelowOneIsConstant(t *testing.T) {
	b := Backoff{Initial: 50 * time.Millisecond}
	assert.Equal(t, 50*time.Millisecond, b.NextDelay(0))
	assert.Equal(t, 50*time.Millisecond, b.NextDelay(7))
}

func TestBackoff_JitterBounds(t *testing.T) {
	base := Backoff{Initial: time.Second, Factor: 2, Jitter: 0.1}

	high := base
	high.Rand = func() float64 { return 1 }
	low := base
	low.Rand = func() float64 { return 0 }

	assert.Equal(t, 1100*time.Millisecond, high.NextDelay(0))
	assert.Equal(t, 900*time.Millisecond, low.NextDelay(0))

	for i := 0; i < 100; i++ {
		d := base.NextDelay(0)
		assert.GreaterOrEqual(t, d, 900*time.Millisecond)
		assert.LessOrEqual(t, d, 1100*time.Millisecond)
	}
}

func TestConnectBackoff(t *testing.T) {
	b := ConnectBackoff(2)
	assert.Equal(t, 2, b.MaxAttempts())
	assert.Equal(t, wp2csv.DefaultRetryInitialDelay, b.Initial)
	assert.Equal(t, wp2csv.DefaultRetryMaxDelay, b.Max)
}

package retry

import (
	"math"
	"math/rand"
	"time"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// Backoff is a capped exponential delay schedule. It implements
// wp2csv.BackoffStrategy.
type Backoff struct {
	// Retries is the number of attempts after the first; negative is unlimited.
	Retries int
	Initial time.Duration
	Max     time.Duration
	Factor  float64

	// Jitter spreads each delay by up to +/- Jitter of its value.
	Jitter float64

	// Rand yields values in [0, 1); math/rand when nil.
	Rand func() float64
}

// ConnectBackoff is the schedule used between connection attempts.
func ConnectBackoff(retries int) Backoff {
	return Backoff{
		Retries: retries,
		Initial: wp2csv.DefaultRetryInitialDelay,
		Max:     wp2csv.DefaultRetryMaxDelay,
		Factor:  2,
		Jitter:  0.1,
	}
}

// NextDelay returns Initial * Factor^attempt, capped at Max, then jittered.
func (b Backoff) NextDelay(attempt int) time.Duration {
	factor := b.Factor
	if factor < 1 {
		factor = 1
	}
	d := float64(b.Initial) * math.Pow(factor, float64(attempt))
	if b.Max > 0 && d > float64(b.Max) {
		d = float64(b.Max)
	}
	if b.Jitter > 0 {
		r := b.Rand
		if r == nil {
			r = rand.Float64
		}
		d += d * b.Jitter * (2*r() - 1)
	}
	return time.Duration(d).Round(time.Millisecond)
}

func (b Backoff) MaxAttempts() int { return b.Retries }

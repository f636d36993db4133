package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Checkout counts checkout outcomes for one process.
type Checkout struct {
	Attempts           Counter
	Successes          Counter
	ValidationFailures Counter
	CommitFailures     Counter
	Unavailable        Counter
	ReconcileFailures  Counter
	Quotes             Counter
}

// CheckoutStats is a point-in-time copy of Checkout.
type CheckoutStats struct {
	Attempts           uint64 `json:"attempts"`
	Successes          uint64 `json:"successes"`
	ValidationFailures uint64 `json:"validationFailures"`
	CommitFailures     uint64 `json:"commitFailures"`
	Unavailable        uint64 `json:"unavailable"`
	ReconcileFailures  uint64 `json:"reconcileFailures"`
	Quotes             uint64 `json:"quotes"`
}

func (c *Checkout) Stats() CheckoutStats {
	return CheckoutStats{
		Attempts:           c.Attempts.Load(),
		Successes:          c.Successes.Load(),
		ValidationFailures: c.ValidationFailures.Load(),
		CommitFailures:     c.CommitFailures.Load(),
		Unavailable:        c.Unavailable.Load(),
		ReconcileFailures:  c.ReconcileFailures.Load(),
		Quotes:             c.Quotes.Load(),
	}
}

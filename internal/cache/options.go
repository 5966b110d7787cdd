package cache

import "time"

// DefaultTTL is how long an entry stays readable after Set.
const DefaultTTL = 5 * time.Minute

type config struct {
	ttl       time.Duration
	clock     Clock
	scheduler Scheduler
	onEvict   func(key string)
}

func defaultConfig() config {
	return config{
		ttl:       DefaultTTL,
		clock:     realClock{},
		scheduler: realScheduler{},
	}
}

// Option configures a Store.
type Option func(*config)

// WithTTL sets the entry time-to-live. Non-positive values are ignored.
func WithTTL(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithClock sets the clock used for expiry checks.
func WithClock(clk Clock) Option {
	return func(c *config) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithScheduler sets the scheduler used for deferred eviction.
func WithScheduler(s Scheduler) Option {
	return func(c *config) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// OnEvict sets a callback invoked after a scheduled eviction removes an entry.
// It is not called for Delete, lazy expiry, or overwritten entries.
func OnEvict(fn func(key string)) Option {
	return func(c *config) {
		c.onEvict = fn
	}
}

package minigame

import "time"

type config struct {
	now          func() time.Time
	seed         int64
	seedSet      bool
	chaseTimeout time.Duration
	dialTarget   float64
	dialTargetOk bool
}

type Option func(*config)

// WithClock injects the wall-clock source used for timed rounds.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// WithSeed pins the random source so sequences are reproducible.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.seedSet = true
	}
}

// WithChaseTimeout overrides the per-round response deadline.
func WithChaseTimeout(d time.Duration) Option {
	return func(c *config) {
		c.chaseTimeout = d
	}
}

// WithDialTarget pins the frequency the dial game wants.
func WithDialTarget(target float64) Option {
	return func(c *config) {
		c.dialTarget = target
		c.dialTargetOk = true
	}
}

func buildConfig(opts []Option) *config {
	c := &config{
		now:          time.Now,
		chaseTimeout: defaultChaseTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.seedSet {
		c.seed = time.Now().UnixNano()
	}
	return c
}

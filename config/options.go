package config

// An Option adjusts one knob of a Config.
type Option func(*Config)

// With builds a Config from the defaults and the given options.
func With(opts ...Option) Config {
	cfg := Default()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxStepBound caps the exploration depth.
func WithMaxStepBound(n int) Option {
	return func(c *Config) { c.MaxStepBound = n }
}

// WithReceiverQueueSemantics enables the receiver-order filter.
func WithReceiverQueueSemantics() Option {
	return func(c *Config) { c.UseReceiverQueueSemantics = true }
}

// WithBagSemantics switches machine buffers to unordered bags.
func WithBagSemantics() Option {
	return func(c *Config) { c.UseBagSemantics = true }
}

// WithSleepSets enables sleep-set pruning.
func WithSleepSets() Option {
	return func(c *Config) { c.UseSleepSets = true }
}

// WithStateCaching enables concrete-state enumeration and pruning.
func WithStateCaching() Option {
	return func(c *Config) { c.UseStateCaching = true }
}

// WithBacktrack snapshots source state each step.
func WithBacktrack() Option {
	return func(c *Config) { c.UseBacktrack = true }
}

// WithLimits caps memory (MB) and wall-clock time (seconds); zero
// leaves a limit off.
func WithLimits(memMB, timeSeconds float64) Option {
	return func(c *Config) {
		c.MemLimitMB = memMB
		c.TimeLimitSeconds = timeSeconds
	}
}

// WithVerbosity sets the log verbosity.
func WithVerbosity(v int) Option {
	return func(c *Config) { c.Verbosity = v }
}

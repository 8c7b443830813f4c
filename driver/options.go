package driver

// Option configures a Driver at construction time, following the
// teacher's functional-options shape (config.SchedulerOption,
// config.MaxRunsOption).
type Option func(*Driver)

// WithMaxDepth bounds the parent-event cursor's depth; event_produced
// calls beyond the bound are dropped (§4.1). 0 (the default) means
// unbounded.
func WithMaxDepth(depth int) Option {
	return func(d *Driver) { d.maxDepth = depth }
}

// WithReplayPolicy sets the policy invoked on replay divergence
// (SPEC_FULL §12, resolving spec's Open Question 1). Defaults to LogOnly.
func WithReplayPolicy(p ReplayPolicy) Option {
	return func(d *Driver) { d.policy = p }
}

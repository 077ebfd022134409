package rating

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key rating events.
type MetricsProvider interface {
	// OnStateChange is called when the rating moves between idle and dragging.
	OnStateChange(from, to State)

	// OnRetarget is called each time the preview driver receives a new target.
	OnRetarget(target float64)

	// OnCommit is called when a value is reported to the host.
	// Source is "tap" or "drag".
	OnCommit(source string, value float64)

	// OnConfigRejected is called once per rejected configuration setting.
	OnConfigRejected(err error)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(_, _ State)     {}
func (NoOpMetricsProvider) OnRetarget(_ float64)         {}
func (NoOpMetricsProvider) OnCommit(_ string, _ float64) {}
func (NoOpMetricsProvider) OnConfigRejected(_ error)     {}

// Package metrics exports Rating activity as Prometheus metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/zoobzio/rating"
)

// Provider implements rating.MetricsProvider on Prometheus collectors.
type Provider struct {
	// Commits counts values reported to the host by source (tap, drag).
	Commits *prometheus.CounterVec

	// CommittedValue is the value last reported to the host.
	CommittedValue prometheus.Gauge

	// Retargets counts preview retargets.
	Retargets prometheus.Counter

	// PreviewTarget is the most recent preview target.
	PreviewTarget prometheus.Gauge

	// StateChanges counts interaction state transitions by new state.
	StateChanges *prometheus.CounterVec

	// Dragging is 1 while a drag is in progress.
	Dragging prometheus.Gauge

	// Rejections counts rejected settings by reason.
	Rejections *prometheus.CounterVec
}

// New registers the rating collectors with reg and returns a Provider.
// Pass prometheus.DefaultRegisterer to expose them on the default handler.
func New(reg prometheus.Registerer) *Provider {
	factory := promauto.With(reg)
	return &Provider{
		Commits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rating_commits_total",
				Help: "Total values committed to the host by source",
			},
			[]string{"source"},
		),
		CommittedValue: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rating_committed_value",
				Help: "Value last committed to the host",
			},
		),
		Retargets: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rating_preview_retargets_total",
				Help: "Total preview animation retargets",
			},
		),
		PreviewTarget: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rating_preview_target",
				Help: "Most recent preview animation target",
			},
		),
		StateChanges: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rating_state_changes_total",
				Help: "Interaction state transitions by new state",
			},
			[]string{"state"},
		),
		Dragging: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "rating_dragging",
				Help: "Whether a drag gesture is in progress (0 or 1)",
			},
		),
		Rejections: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rating_config_rejections_total",
				Help: "Rejected settings replaced by their defaults, by reason",
			},
			[]string{"reason"},
		),
	}
}

// OnStateChange records a transition and updates the dragging gauge.
func (p *Provider) OnStateChange(_, to rating.State) {
	p.StateChanges.WithLabelValues(to.String()).Inc()
	if to == rating.StateDragging {
		p.Dragging.Set(1)
	} else {
		p.Dragging.Set(0)
	}
}

// OnRetarget records a preview retarget.
func (p *Provider) OnRetarget(target float64) {
	p.Retargets.Inc()
	p.PreviewTarget.Set(target)
}

// OnCommit records a value reported to the host.
func (p *Provider) OnCommit(source string, value float64) {
	p.Commits.WithLabelValues(source).Inc()
	p.CommittedValue.Set(value)
}

// OnConfigRejected records a rejected setting.
func (p *Provider) OnConfigRejected(err error) {
	p.Rejections.WithLabelValues(reason(err)).Inc()
}

func reason(err error) string {
	switch {
	case errors.Is(err, rating.ErrInvalidGranularity):
		return "granularity"
	case errors.Is(err, rating.ErrInvalidValueType):
		return "value_type"
	case errors.Is(err, rating.ErrInvalidConfig):
		return "config"
	default:
		return "other"
	}
}

// Ensure Provider implements rating.MetricsProvider.
var _ rating.MetricsProvider = (*Provider)(nil)

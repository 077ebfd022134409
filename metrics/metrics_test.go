package metrics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/rating"
)

func newProvider(t *testing.T) *Provider {
	t.Helper()
	return New(prometheus.NewRegistry())
}

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := New(reg)
	require.NotNil(t, p)

	p.OnCommit("tap", 4)
	p.OnStateChange(rating.StateIdle, rating.StateDragging)
	p.OnConfigRejected(rating.ErrInvalidGranularity)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestProvider_OnCommit(t *testing.T) {
	p := newProvider(t)

	p.OnCommit("tap", 4)
	p.OnCommit("drag", 2.5)
	p.OnCommit("drag", 3)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.Commits.WithLabelValues("tap")))
	assert.Equal(t, 2.0, testutil.ToFloat64(p.Commits.WithLabelValues("drag")))
	assert.Equal(t, 3.0, testutil.ToFloat64(p.CommittedValue))
}

func TestProvider_OnStateChange(t *testing.T) {
	p := newProvider(t)

	p.OnStateChange(rating.StateIdle, rating.StateDragging)
	assert.Equal(t, 1.0, testutil.ToFloat64(p.Dragging))

	p.OnStateChange(rating.StateDragging, rating.StateIdle)
	assert.Equal(t, 0.0, testutil.ToFloat64(p.Dragging))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.StateChanges.WithLabelValues("dragging")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.StateChanges.WithLabelValues("idle")))
}

func TestProvider_OnRetarget(t *testing.T) {
	p := newProvider(t)

	p.OnRetarget(2)
	p.OnRetarget(3.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.Retargets))
	assert.Equal(t, 3.5, testutil.ToFloat64(p.PreviewTarget))
}

func TestProvider_OnConfigRejected(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason string
	}{
		{"granularity", rating.ErrInvalidGranularity, "granularity"},
		{"value type", rating.ErrInvalidValueType, "value_type"},
		{"config", rating.ErrInvalidConfig, "config"},
		{"other", errors.New("boom"), "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newProvider(t)
			p.OnConfigRejected(tt.err)
			assert.Equal(t, 1.0, testutil.ToFloat64(p.Rejections.WithLabelValues(tt.reason)))
		})
	}
}

func TestProvider_WithRating(t *testing.T) {
	ctx := context.Background()
	p := newProvider(t)

	cfg := rating.DefaultConfig()
	cfg.Granularity, _ = rating.ParseGranularity(21) //nolint:errcheck // Rejection is what is being measured
	r := rating.New(cfg).
		Metrics(p).
		Logger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	r.Mount(ctx, 3)
	r.TapIcon(ctx, 3)
	r.DragMove(ctx, -40)
	r.DragRelease(ctx)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.Rejections.WithLabelValues("granularity")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.Commits.WithLabelValues("tap")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.Commits.WithLabelValues("drag")))
	assert.Equal(t, 3.0, testutil.ToFloat64(p.CommittedValue))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.Dragging))
	assert.Equal(t, 3.0, testutil.ToFloat64(p.Retargets))
}

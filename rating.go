package rating

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"

	"github.com/zoobzio/capitan"
)

// ChangeFunc receives values committed by a tap or a drag release.
type ChangeFunc func(ctx context.Context, value float64)

// Rating is the value engine behind an interactive star-rating control.
//
// It owns three values: the committed value last acknowledged by the host,
// the drag target selected by an interaction in progress, and the preview
// value animated by a Driver toward the drag target. Only taps and drag
// releases report to the host; drag moves update the target and preview.
//
// Events are expected to arrive one at a time from the host event loop.
// The host callback is invoked after internal state is updated and outside
// of any lock, so it may call back into the Rating.
type Rating struct {
	onChange ChangeFunc
	driver   Driver
	metrics  MetricsProvider
	logger   *slog.Logger

	mu        sync.Mutex
	cfg       Config
	pending   error
	mounted   bool
	state     State
	committed float64
	target    float64
	base      float64
	external  float64
	lastError error
	errorRing *errorRing
}

// New creates a Rating for cfg.
//
// Rejected settings are replaced by their defaults straight away so that
// the control stays usable; the rejection is reported on Mount through
// LastError, the RatingConfigRejected signal, the metrics provider and the
// logger.
//
// Example:
//
//	r := rating.New(rating.DefaultConfig()).
//	    OnChange(func(ctx context.Context, v float64) {
//	        store.SaveRating(ctx, v)
//	    })
//	r.Mount(ctx, 3)
func New(cfg Config) *Rating {
	effective, err := cfg.sanitize()
	return &Rating{
		cfg:     effective,
		pending: err,
		driver:  &Snap{},
		logger:  slog.Default(),
	}
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// OnChange sets the host callback for committed values.
// Default: none, committed values are only visible through signals and
// Committed(). Must be called before Mount().
func (r *Rating) OnChange(fn ChangeFunc) *Rating {
	r.onChange = fn
	return r
}

// Driver sets the preview animation driver. Default: Snap.
// Must be called before Mount().
func (r *Rating) Driver(d Driver) *Rating {
	if d != nil {
		r.driver = d
	}
	return r
}

// Metrics sets a metrics provider for observability integration.
// Must be called before Mount().
func (r *Rating) Metrics(provider MetricsProvider) *Rating {
	r.metrics = provider
	return r
}

// Logger sets the logger used to report rejected configuration.
// Default: slog.Default(). Must be called before Mount().
func (r *Rating) Logger(logger *slog.Logger) *Rating {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// ErrorHistorySize sets the number of recent rejections to retain.
// When set, ErrorHistory() returns up to this many rejections, one per
// rejected setting. Use 0 (default) to only retain LastError().
// Must be called before Mount().
func (r *Rating) ErrorHistorySize(n int) *Rating {
	r.errorRing = newErrorRing(n)
	return r
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Mount seeds the Rating with the host's initial value. The committed value
// and drag target become the cleaned initial value and the preview is sent
// toward it. The host callback is not invoked.
func (r *Rating) Mount(ctx context.Context, initial float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mount(ctx, initial)
}

func (r *Rating) mount(ctx context.Context, initial float64) {
	if r.pending != nil {
		r.report(ctx, r.pending)
		r.pending = nil
	}

	v := Clean(initial, r.cfg)
	r.mounted = true
	r.external = initial
	r.committed = v
	r.target = v
	r.transition(ctx, StateIdle)

	capitan.Emit(ctx, RatingMounted,
		KeyValue.Field(v),
		KeyReadonly.Field(r.cfg.Readonly),
		KeyGranularity.Field(r.cfg.Granularity.String()),
	)
	r.retarget(ctx, v)
}

// ExternalValueChanged applies a value supplied by the host. Delivering the
// value last observed is a no-op and returns false; otherwise the committed
// value and drag target take the new value, any drag in progress is
// abandoned, and the preview is sent toward the cleaned value. The host
// callback is not invoked. Before Mount this behaves like Mount.
func (r *Rating) ExternalValueChanged(ctx context.Context, value float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.mounted {
		r.mount(ctx, value)
		return true
	}
	if value == r.external {
		return false
	}

	r.external = value
	r.committed = value
	r.target = value
	r.transition(ctx, StateIdle)

	capitan.Emit(ctx, RatingExternalValue,
		KeyValue.Field(value),
	)
	r.retarget(ctx, Clean(value, r.cfg))
	return true
}

// Reconfigure replaces the configuration, as on a re-render with new props.
// Rejected settings fall back to defaults and are reported. Switching to
// readonly abandons any drag in progress, and a drag target beyond a
// smaller scale is pulled back within it. Committed values are left as
// they are.
func (r *Rating) Reconfigure(ctx context.Context, cfg Config) error {
	effective, err := cfg.sanitize()

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		if r.mounted {
			r.report(ctx, err)
		} else {
			r.pending = err
		}
	} else if !r.mounted {
		r.pending = nil
	}
	r.cfg = effective

	if r.state == StateDragging {
		switch {
		case effective.Readonly:
			r.target = r.committed
			r.transition(ctx, StateIdle)
			r.retarget(ctx, r.target)
		case clamp(r.target, effective.MaxValue) != r.target:
			r.target = clamp(r.target, effective.MaxValue)
			r.retarget(ctx, r.target)
		}
	}
	return err
}

// -----------------------------------------------------------------------------
// Interaction
// -----------------------------------------------------------------------------

// TapIcon selects the value of the icon at the zero-based index: the cleaned
// index+1, bounded by the max value. The host callback receives the value.
// Readonly ratings and indices outside [0, IconCount()) are ignored and
// return false.
func (r *Rating) TapIcon(ctx context.Context, index int) bool {
	r.mu.Lock()
	if r.cfg.Readonly || index < 0 || index >= r.iconCount() {
		r.mu.Unlock()
		return false
	}

	v := clamp(Clean(float64(index+1), r.cfg), r.cfg.MaxValue)
	r.committed = v
	r.target = v

	capitan.Emit(ctx, RatingIconTapped,
		KeyIndex.Field(index),
		KeyValue.Field(v),
	)
	r.retarget(ctx, v)
	r.mu.Unlock()

	r.commit(ctx, "tap", v)
	return true
}

// DragStart begins a drag gesture, capturing the committed value as the
// base for displacement. Readonly ratings ignore it.
func (r *Rating) DragStart(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dragStart(ctx)
}

func (r *Rating) dragStart(ctx context.Context) {
	if r.cfg.Readonly || r.state == StateDragging {
		return
	}
	r.base = r.committed
	r.transition(ctx, StateDragging)
	capitan.Emit(ctx, RatingDragStarted,
		KeyValue.Field(r.base),
	)
}

// DragMove moves the drag target to the cleaned base value plus
// displacement pixels scaled by the icon span, bounded to [0, MaxValue],
// and sends the preview toward it. A move without DragStart starts the drag.
// The host callback is not invoked. Readonly ratings ignore it.
func (r *Rating) DragMove(ctx context.Context, displacement float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cfg.Readonly {
		return
	}
	r.dragStart(ctx)

	r.target = DragTarget(r.base, displacement, r.cfg)
	capitan.Emit(ctx, RatingDragMoved,
		KeyDisplacement.Field(displacement),
		KeyTarget.Field(r.target),
	)
	r.retarget(ctx, r.target)
}

// DragRelease commits the drag target and reports it to the host. A release
// without a preceding move reports the unchanged committed value, exactly
// as a zero-displacement drag would. Readonly ratings ignore it.
func (r *Rating) DragRelease(ctx context.Context) {
	r.mu.Lock()
	if r.cfg.Readonly {
		r.mu.Unlock()
		return
	}

	v := r.target
	r.committed = v
	r.transition(ctx, StateIdle)
	capitan.Emit(ctx, RatingDragReleased,
		KeyValue.Field(v),
	)
	r.mu.Unlock()

	r.commit(ctx, "drag", v)
}

// TerminationRequest answers a competing gesture recognizer asking the
// Rating to give up the pointer. A drag in progress is never yielded.
func (r *Rating) TerminationRequest() bool {
	return r.State() != StateDragging
}

// ClaimsGesture reports whether the Rating captures pointer moves.
// Readonly ratings do not.
func (r *Rating) ClaimsGesture() bool {
	return !r.Config().Readonly
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// State returns the interaction state.
func (r *Rating) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Committed returns the value last acknowledged by the host or set externally.
func (r *Rating) Committed() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.committed
}

// Target returns the drag target. It equals Committed while idle.
func (r *Rating) Target() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target
}

// Preview returns the live preview value from the driver. It may overshoot
// the scale while animating; use FillWidth for display.
func (r *Rating) Preview() float64 {
	return r.driver.Value()
}

// FillWidth returns the width in pixels of the filled icon layer: the
// preview clamped to [0, MaxValue] times the icon span.
func (r *Rating) FillWidth() float64 {
	cfg := r.Config()
	return clamp(r.Preview(), cfg.MaxValue) * cfg.IconSpan
}

// IconCount returns the number of icons to render.
func (r *Rating) IconCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.iconCount()
}

func (r *Rating) iconCount() int {
	return int(math.Ceil(r.cfg.MaxValue))
}

// Config returns the effective configuration, with rejected settings
// already replaced by their defaults.
func (r *Rating) Config() Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// LastError returns the most recent configuration rejection, or nil.
func (r *Rating) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastError
}

// ErrorHistory returns recent rejections, oldest first.
// Returns nil if error history is not enabled (see ErrorHistorySize).
func (r *Rating) ErrorHistory() []error {
	return r.errorRing.all()
}

// -----------------------------------------------------------------------------
// Internals
// -----------------------------------------------------------------------------

// retarget sends the preview toward v. Callers hold mu.
func (r *Rating) retarget(ctx context.Context, v float64) {
	r.driver.Retarget(ctx, v)
	capitan.Emit(ctx, RatingPreviewRetargeted,
		KeyTarget.Field(v),
	)
	if r.metrics != nil {
		r.metrics.OnRetarget(v)
	}
}

// transition updates the state and emits a state change event if changed.
// Callers hold mu.
func (r *Rating) transition(ctx context.Context, to State) {
	from := r.state
	if from == to {
		return
	}
	r.state = to
	capitan.Emit(ctx, RatingStateChanged,
		KeyOldState.Field(from.String()),
		KeyNewState.Field(to.String()),
	)
	if r.metrics != nil {
		r.metrics.OnStateChange(from, to)
	}
}

// report records a configuration rejection. Callers hold mu.
func (r *Rating) report(ctx context.Context, err error) {
	r.lastError = err
	for _, e := range split(err) {
		r.errorRing.push(e)
		capitan.Emit(ctx, RatingConfigRejected,
			KeyError.Field(e.Error()),
		)
		if r.metrics != nil {
			r.metrics.OnConfigRejected(e)
		}
		r.logger.WarnContext(ctx, "rating configuration rejected, using fallback",
			"error", e,
			"max_value", r.cfg.MaxValue,
			"granularity", r.cfg.Granularity.String(),
			"icon_span", r.cfg.IconSpan,
		)
	}
}

// rejectValue records a rejection raised outside of Config, such as a
// non-numeric external value from a props document.
func (r *Rating) rejectValue(ctx context.Context, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report(ctx, err)
}

// commit reports a value to the host. Callers must not hold mu.
func (r *Rating) commit(ctx context.Context, source string, v float64) {
	capitan.Emit(ctx, RatingValueCommitted,
		KeyValue.Field(v),
	)
	if r.metrics != nil {
		r.metrics.OnCommit(source, v)
	}
	if r.onChange != nil {
		r.onChange(ctx, v)
	}
}

// split unpacks an errors.Join result into its parts.
func split(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}

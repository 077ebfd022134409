package rating

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce duration for props changes.
const DefaultDebounce = 100 * time.Millisecond

// Binding keeps a Rating in step with a stream of props documents, the way
// a host re-renders the control with new props.
//
// The first document that decodes mounts the Rating. Each later document
// reconfigures it and delivers its value as an external value change, so a
// document whose value is unchanged leaves an interaction in progress alone.
// A document that cannot be decoded is dropped: the Rating keeps the props
// last applied and the Binding enters a degraded state until a valid
// document arrives.
type Binding struct {
	rating         *Rating
	watcher        Watcher
	debounce       time.Duration
	startupTimeout time.Duration
	syncMode       bool
	clock          clockz.Clock
	codec          Codec
	logger         *slog.Logger
	onStop         func(BindingState)

	state        atomic.Int32
	current      atomic.Pointer[Props]
	lastError    atomic.Pointer[error]
	errorHistory *errorRing

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive documents
	changes <-chan []byte
}

// Bind creates a Binding that applies documents from watcher to r.
//
// Example:
//
//	r := rating.New(rating.DefaultConfig()).OnChange(save)
//	b := rating.Bind(r, rating.NewFileWatcher("rating.yaml")).
//	    Codec(rating.YAMLCodec{}).
//	    Debounce(50 * time.Millisecond)
//
//	if err := b.Start(ctx); err != nil {
//	    log.Printf("initial props failed: %v", err)
//	}
func Bind(r *Rating, watcher Watcher) *Binding {
	b := &Binding{
		rating:   r,
		watcher:  watcher,
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
		codec:    JSONCodec{},
		logger:   slog.Default(),
	}
	b.state.Store(int32(BindingLoading))
	return b
}

// -----------------------------------------------------------------------------
// Chainable Instance Configuration
// -----------------------------------------------------------------------------

// Debounce sets how long to wait for further documents before applying
// the latest one. Default: 100ms. Must be called before Start().
func (b *Binding) Debounce(d time.Duration) *Binding {
	b.debounce = d
	return b
}

// SyncMode enables synchronous processing for testing. Start applies only
// the first document; use Process() to apply each later one.
// Must be called before Start().
func (b *Binding) SyncMode() *Binding {
	b.syncMode = true
	return b
}

// Clock sets a custom clock for debounce and startup timing.
// Must be called before Start().
func (b *Binding) Clock(clock clockz.Clock) *Binding {
	b.clock = clock
	return b
}

// Codec sets the props decoder. Default: JSONCodec.
// Must be called before Start().
func (b *Binding) Codec(codec Codec) *Binding {
	b.codec = codec
	return b
}

// StartupTimeout bounds how long Start waits for the first document.
// Default: no timeout. Must be called before Start().
func (b *Binding) StartupTimeout(d time.Duration) *Binding {
	b.startupTimeout = d
	return b
}

// Logger sets the logger used to report dropped documents.
// Default: slog.Default(). Must be called before Start().
func (b *Binding) Logger(logger *slog.Logger) *Binding {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// OnStop sets a callback invoked with the final state when watching ends.
// Must be called before Start().
func (b *Binding) OnStop(fn func(BindingState)) *Binding {
	b.onStop = fn
	return b
}

// ErrorHistorySize sets the number of recent decode errors to retain.
// Must be called before Start().
func (b *Binding) ErrorHistorySize(n int) *Binding {
	b.errorHistory = newErrorRing(n)
	return b
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// State returns the current state of the Binding.
func (b *Binding) State() BindingState {
	return BindingState(b.state.Load())
}

// Current returns the props last applied and true, or false if no document
// has been applied yet.
func (b *Binding) Current() (Props, bool) {
	ptr := b.current.Load()
	if ptr == nil {
		return Props{}, false
	}
	return *ptr, true
}

// LastError returns the last decode error, or nil.
func (b *Binding) LastError() error {
	ptr := b.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// ErrorHistory returns recent decode errors, oldest first.
// Returns nil if error history is not enabled (see ErrorHistorySize).
func (b *Binding) ErrorHistory() []error {
	return b.errorHistory.all()
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Start begins watching. It blocks until the first document has been
// applied or dropped, then keeps watching in the background. If the first
// document is dropped, Start returns the error and keeps watching for a
// valid one.
//
// Start can only be called once.
func (b *Binding) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return errors.New("binding already started")
	}
	b.started = true
	b.mu.Unlock()

	capitan.Emit(ctx, BindingStarted,
		KeyDebounce.Field(b.debounce),
	)

	changes, err := b.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	startupCtx := ctx
	if b.startupTimeout > 0 {
		var cancel context.CancelFunc
		startupCtx, cancel = b.clock.WithTimeout(ctx, b.startupTimeout)
		defer cancel()
	}

	var initialErr error
	select {
	case <-startupCtx.Done():
		if b.startupTimeout > 0 && errors.Is(startupCtx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("startup timeout: watcher did not emit props within %v", b.startupTimeout)
		}
		return startupCtx.Err()
	case raw, ok := <-changes:
		if !ok {
			return errors.New("watcher closed before emitting props")
		}
		capitan.Emit(ctx, BindingChangeReceived)
		initialErr = b.process(ctx, raw)
	}

	if b.syncMode {
		b.changes = changes
		return initialErr
	}

	go b.watch(ctx, changes)
	return initialErr
}

// Process applies the next pending document. It is only available in sync
// mode and reports false when no document is waiting.
func (b *Binding) Process(ctx context.Context) bool {
	if !b.syncMode {
		return false
	}
	select {
	case raw, ok := <-b.changes:
		if !ok {
			return false
		}
		capitan.Emit(ctx, BindingChangeReceived)
		_ = b.process(ctx, raw) //nolint:errcheck // Errors stored via setError
		return true
	default:
		return false
	}
}

// process decodes a single document and applies it to the Rating.
func (b *Binding) process(ctx context.Context, raw []byte) error {
	old := b.State()

	props, err := b.codec.Decode(raw)
	if err != nil {
		b.setError(err)
		b.transition(ctx, old, b.failureState())
		capitan.Emit(ctx, BindingDecodeFailed,
			KeyError.Field(err.Error()),
		)
		b.logger.WarnContext(ctx, "rating props dropped, keeping previous props",
			"error", err,
			"content_type", b.codec.ContentType(),
		)
		return fmt.Errorf("decode failed: %w", err)
	}

	value, valueErr := props.ExternalValue()
	first := b.current.Load() == nil

	// Rejected settings fall back to defaults; the Rating reports them.
	_ = b.rating.Reconfigure(ctx, props.Config()) //nolint:errcheck // Reported by the Rating
	// A non-numeric value in a later document keeps the value last observed.
	switch {
	case first:
		b.rating.Mount(ctx, value)
	case valueErr == nil:
		b.rating.ExternalValueChanged(ctx, value)
	}
	if valueErr != nil {
		b.rating.rejectValue(ctx, valueErr)
	}

	b.current.Store(&props)
	b.lastError.Store(nil)
	b.errorHistory.clear()
	b.transition(ctx, old, BindingHealthy)
	return nil
}

// failureState is Empty until a document has been applied, then Degraded.
func (b *Binding) failureState() BindingState {
	if b.current.Load() == nil {
		return BindingEmpty
	}
	return BindingDegraded
}

func (b *Binding) transition(ctx context.Context, from, to BindingState) {
	if from == to {
		return
	}
	b.state.Store(int32(to))
	capitan.Emit(ctx, BindingStateChanged,
		KeyOldState.Field(from.String()),
		KeyNewState.Field(to.String()),
	)
}

func (b *Binding) setError(err error) {
	e := err
	b.lastError.Store(&e)
	b.errorHistory.push(err)
}

// watch applies documents from changes, debounced.
func (b *Binding) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		final := b.State()
		capitan.Emit(ctx, BindingStopped,
			KeyState.Field(final.String()),
		)
		if b.onStop != nil {
			b.onStop(final)
		}
	}()

	var (
		timer   clockz.Timer
		pending []byte
		waiting bool
	)

	for {
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				if waiting {
					_ = b.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				}
				return
			}
			capitan.Emit(ctx, BindingChangeReceived)
			pending = raw
			waiting = true

			if timer == nil {
				timer = b.clock.NewTimer(b.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(b.debounce)
			}

		case <-timerC:
			if waiting {
				_ = b.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				waiting = false
			}
		}
	}
}

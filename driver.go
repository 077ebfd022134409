package rating

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"
)

// Driver advances the preview value toward a target over time.
//
// Retarget is fire-and-forget: it must not block, and a new call redirects
// any animation still in flight instead of queueing behind it. The ctx
// passed to Retarget belongs to a single event and may be canceled as soon
// as the event is handled, so an animation must not stop with it.
type Driver interface {
	// Retarget starts animating the preview value toward target.
	Retarget(ctx context.Context, target float64)

	// Value returns the current preview value.
	Value() float64
}

// Snap is a Driver that jumps straight to the target.
type Snap struct {
	bits atomic.Uint64
}

// Retarget sets the preview value to target.
func (s *Snap) Retarget(_ context.Context, target float64) {
	s.bits.Store(math.Float64bits(target))
}

// Value returns the preview value.
func (s *Snap) Value() float64 {
	return math.Float64frombits(s.bits.Load())
}

// Ensure Snap implements Driver.
var _ Driver = (*Snap)(nil)

// DefaultTweenDuration is the default length of a Tween animation.
const DefaultTweenDuration = 300 * time.Millisecond

// DefaultFrame is the default interval between Tween frames.
const DefaultFrame = 16 * time.Millisecond

// Tween is a Driver that eases the preview value toward its target over a
// fixed duration, one frame at a time. Retargeting mid-flight restarts the
// ease from wherever the preview currently is.
type Tween struct {
	duration time.Duration
	frame    time.Duration
	clock    clockz.Clock

	mu     sync.Mutex
	value  float64
	target float64
	gen    uint64
	cancel context.CancelFunc
}

// NewTween creates a Tween that completes each animation in duration.
// A non-positive duration uses DefaultTweenDuration.
func NewTween(duration time.Duration) *Tween {
	if duration <= 0 {
		duration = DefaultTweenDuration
	}
	return &Tween{
		duration: duration,
		frame:    DefaultFrame,
		clock:    clockz.RealClock,
	}
}

// Frame sets the interval between frames. Default: 16ms.
func (t *Tween) Frame(d time.Duration) *Tween {
	if d > 0 {
		t.frame = d
	}
	return t
}

// Clock sets a custom clock for frame timing.
// Use this with clockz.FakeClock for deterministic tests.
func (t *Tween) Clock(clock clockz.Clock) *Tween {
	t.clock = clock
	return t
}

// Retarget cancels the animation in flight, if any, and starts easing from
// the current value toward target. The animation keeps ctx's values but not
// its cancellation; use Stop to halt it.
func (t *Tween) Retarget(ctx context.Context, target float64) {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	t.gen++
	gen := t.gen
	from := t.value
	t.target = target
	actx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	t.cancel = cancel
	t.mu.Unlock()

	go t.run(actx, gen, from, target)
}

// Value returns the current preview value.
func (t *Tween) Value() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

// Target returns the most recent target.
func (t *Tween) Target() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target
}

// Stop halts the animation in flight, leaving the preview where it is.
func (t *Tween) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
}

func (t *Tween) run(ctx context.Context, gen uint64, from, to float64) {
	steps := int(math.Ceil(float64(t.duration) / float64(t.frame)))
	for i := 1; i <= steps; i++ {
		timer := t.clock.NewTimer(t.frame)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C():
		}

		v := to
		if i < steps {
			v = from + (to-from)*easeOut(float64(i)/float64(steps))
		}

		t.mu.Lock()
		if t.gen != gen {
			t.mu.Unlock()
			return
		}
		t.value = v
		t.mu.Unlock()
	}
}

// easeOut is a cubic ease-out on [0, 1]; it never overshoots.
func easeOut(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// Ensure Tween implements Driver.
var _ Driver = (*Tween)(nil)

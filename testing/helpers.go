// Package testing provides test utilities and helpers for rating tests.
package testing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/rating"
)

// RecordingDriver is a rating.Driver that records every retarget and jumps
// straight to the target, standing in for a real animation.
type RecordingDriver struct {
	mu      sync.Mutex
	targets []float64
}

// Retarget records target.
func (d *RecordingDriver) Retarget(_ context.Context, target float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.targets = append(d.targets, target)
}

// Value returns the most recent target, or 0 if none was recorded.
func (d *RecordingDriver) Value() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.targets) == 0 {
		return 0
	}
	return d.targets[len(d.targets)-1]
}

// Targets returns every recorded target in order.
func (d *RecordingDriver) Targets() []float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]float64(nil), d.targets...)
}

// Reset forgets recorded targets.
func (d *RecordingDriver) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.targets = nil
}

// Ensure RecordingDriver implements rating.Driver.
var _ rating.Driver = (*RecordingDriver)(nil)

// ChangeRecorder captures values delivered to a host callback.
type ChangeRecorder struct {
	mu     sync.Mutex
	values []float64
}

// Func returns a rating.ChangeFunc that records into r.
func (r *ChangeRecorder) Func() rating.ChangeFunc {
	return func(_ context.Context, v float64) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.values = append(r.values, v)
	}
}

// Values returns every recorded value in order.
func (r *ChangeRecorder) Values() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.values...)
}

// Count returns how many values were recorded.
func (r *ChangeRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.values)
}

// NewTestRating creates a Rating wired to a RecordingDriver and a
// ChangeRecorder. The Rating is not mounted.
func NewTestRating(t *testing.T, cfg rating.Config) (*rating.Rating, *RecordingDriver, *ChangeRecorder) {
	t.Helper()
	driver := &RecordingDriver{}
	changes := &ChangeRecorder{}
	r := rating.New(cfg).
		Driver(driver).
		OnChange(changes.Func()).
		ErrorHistorySize(10)
	return r, driver, changes
}

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return false
}

// RequireState fails the test immediately if r is not in the expected state.
func RequireState(t *testing.T, r *rating.Rating, expected rating.State) {
	t.Helper()
	if got := r.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// RequireValues fails the test immediately unless r holds the expected
// committed value and drag target.
func RequireValues(t *testing.T, r *rating.Rating, committed, target float64) {
	t.Helper()
	if got := r.Committed(); got != committed {
		t.Fatalf("expected committed %v, got %v", committed, got)
	}
	if got := r.Target(); got != target {
		t.Fatalf("expected target %v, got %v", target, got)
	}
}

// RequireFloats fails the test immediately unless got equals want element-wise.
func RequireFloats(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: expected %v, got %v", name, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: expected %v, got %v", name, want, got)
		}
	}
}

package rating

import "sync"

// errorRing keeps the most recent rejections, oldest first on read.
// A nil ring ignores pushes, which is how history is disabled.
type errorRing struct {
	mu      sync.RWMutex
	entries []error
	next    int
	full    bool
}

// newErrorRing returns a ring holding up to size rejections, or nil if
// size is not positive.
func newErrorRing(size int) *errorRing {
	if size <= 0 {
		return nil
	}
	return &errorRing{entries: make([]error, size)}
}

func (r *errorRing) push(err error) {
	if r == nil || err == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = err
	r.next++
	if r.next == len(r.entries) {
		r.next = 0
		r.full = true
	}
}

func (r *errorRing) clear() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.entries)
	r.next = 0
	r.full = false
}

func (r *errorRing) all() []error {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.full {
		if r.next == 0 {
			return nil
		}
		return append([]error(nil), r.entries[:r.next]...)
	}
	out := make([]error, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	return append(out, r.entries[:r.next]...)
}

package rating

import "context"

// Watcher observes a source of props documents and emits each document as
// raw bytes. Implementations emit the current document as soon as Watch is
// called so that a Binding can mount without waiting for the first change.
type Watcher interface {
	// Watch begins observing the source. The returned channel is closed
	// when ctx is canceled or the source can no longer be read.
	Watch(ctx context.Context) (<-chan []byte, error)
}

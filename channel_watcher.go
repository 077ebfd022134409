package rating

import "context"

// ChannelWatcher adapts a channel of props documents to a Watcher.
// It is the usual source in tests and for hosts that already push props.
type ChannelWatcher struct {
	src    <-chan []byte
	direct bool
}

// NewChannelWatcher creates a ChannelWatcher that relays documents from src
// until src is closed or the watch context ends.
func NewChannelWatcher(src <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{src: src}
}

// NewSyncChannelWatcher creates a ChannelWatcher that hands src to the
// Binding as is. Pair it with Binding.SyncMode for deterministic tests.
func NewSyncChannelWatcher(src <-chan []byte) *ChannelWatcher {
	return &ChannelWatcher{src: src, direct: true}
}

// Watch returns the channel of documents.
func (w *ChannelWatcher) Watch(ctx context.Context) (<-chan []byte, error) {
	if w.direct {
		return w.src, nil
	}
	out := make(chan []byte)
	go relay(ctx, w.src, out)
	return out, nil
}

// relay copies documents from src to out, closing out when src closes or
// ctx ends.
func relay(ctx context.Context, src <-chan []byte, out chan<- []byte) {
	defer close(out)
	for {
		var (
			doc []byte
			ok  bool
		)
		select {
		case <-ctx.Done():
			return
		case doc, ok = <-src:
			if !ok {
				return
			}
		}
		if !send(ctx, out, doc) {
			return
		}
	}
}

// send delivers doc on out, reporting false if ctx ended first.
func send(ctx context.Context, out chan<- []byte, doc []byte) bool {
	select {
	case out <- doc:
		return true
	case <-ctx.Done():
		return false
	}
}

// Ensure ChannelWatcher implements Watcher.
var _ Watcher = (*ChannelWatcher)(nil)

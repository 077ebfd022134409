// Package redis provides a rating.Watcher that reads props documents from
// a Redis key.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// keyspaceOps are the keyspace events that replace a string value.
var keyspaceOps = map[string]bool{
	"set":      true,
	"mset":     true,
	"setex":    true,
	"psetex":   true,
	"setnx":    true,
	"setrange": true,
}

// Watcher emits the props document stored at a Redis key.
//
// By default it listens for keyspace notifications on the key, which must
// be enabled on the server:
//
//	CONFIG SET notify-keyspace-events K$
//
// Hosts that cannot enable notifications publish on a channel of their own
// after each write and point the Watcher at it with WithChannel.
type Watcher struct {
	client  redis.UniversalClient
	key     string
	channel string
	db      int
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithChannel listens on channel instead of keyspace notifications. Any
// message on the channel causes the key to be read again.
func WithChannel(channel string) Option {
	return func(w *Watcher) {
		w.channel = channel
	}
}

// WithDB sets the database number used for keyspace notifications.
// Default: 0.
func WithDB(db int) Option {
	return func(w *Watcher) {
		w.db = db
	}
}

// New creates a Watcher for the props document at key.
func New(client redis.UniversalClient, key string, opts ...Option) *Watcher {
	w := &Watcher{
		client: client,
		key:    key,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch subscribes for changes, then emits the current document, if any,
// followed by the document after every change. A missing key emits nothing
// until it is set.
func (w *Watcher) Watch(ctx context.Context) (<-chan []byte, error) {
	keyspace := w.channel == ""
	channel := w.channel
	if keyspace {
		channel = fmt.Sprintf("__keyspace@%d__:%s", w.db, w.key)
	}

	pubsub := w.client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	out := make(chan []byte)

	go func() {
		defer close(out)
		defer pubsub.Close()

		if !w.emit(ctx, out) {
			return
		}

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if keyspace && !keyspaceOps[msg.Payload] {
					continue
				}
				if !w.emit(ctx, out) {
					return
				}
			}
		}
	}()

	return out, nil
}

// emit reads the key and sends its value. It reports false once ctx has
// ended; read failures and a missing key are skipped.
func (w *Watcher) emit(ctx context.Context, out chan<- []byte) bool {
	val, err := w.client.Get(ctx, w.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) || ctx.Err() == nil {
			return true
		}
		return false
	}
	select {
	case out <- val:
		return true
	case <-ctx.Done():
		return false
	}
}

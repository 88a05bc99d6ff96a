package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 16

// Broker delivers published events to every live subscription. Publish
// never blocks: a subscriber whose buffer is full misses the event.
type Broker[T any] struct {
	mu     sync.Mutex
	subs   map[chan Event[T]]func() bool
	buffer int
	closed bool
}

// NewBroker returns a broker with the default per-subscriber buffer.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer returns a broker whose subscriptions buffer size
// events.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:   make(map[chan Event[T]]func() bool),
		buffer: size,
	}
}

// Subscribe returns a channel of events that is closed when ctx ends or the
// broker closes.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event[T], b.buffer)
	if b.closed {
		close(ch)
		return ch
	}

	b.subs[ch] = context.AfterFunc(ctx, func() { b.unsubscribe(ch) })
	return ch
}

func (b *Broker[T]) unsubscribe(ch chan Event[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; !ok {
		return
	}
	delete(b.subs, ch)
	close(ch)
}

// Publish sends an event of type t to all subscribers.
func (b *Broker[T]) Publish(t EventType, payload T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	ev := Event[T]{Type: t, Payload: payload, Timestamp: time.Now()}
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close closes every subscription. Further publishes are dropped and new
// subscriptions are closed immediately. Close is idempotent.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch, stop := range b.subs {
		stop()
		close(ch)
	}
	b.subs = nil
}

// SubscriberCount returns the number of live subscriptions.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

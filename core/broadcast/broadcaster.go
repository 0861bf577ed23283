// Package broadcast implements a hot multicast stream with a one-time
// terminal signal, and projections over it.
//
// Delivery is synchronous: Publish returns after every attached subscriber
// has seen the value. Nothing is buffered or replayed, except the terminal
// signal which is kept for subscribers that attach after it.
package broadcast

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Sink receives the values of a stream. Next is called for every value
// published after the subscription was made, Done exactly once when the
// stream terminates; err is nil for a normal completion. Either may be nil.
type Sink[T any] struct {
	Next func(T)
	Done func(err error)
}

func (s Sink[T]) next(value T) {
	if s.Next != nil {
		s.Next(value)
	}
}

func (s Sink[T]) done(err error) {
	if s.Done != nil {
		s.Done(err)
	}
}

// Stream is anything that can be subscribed to.
type Stream[T any] interface {
	Subscribe(sink Sink[T]) *Subscription
}

// Broadcaster fans published values out to all current subscribers, in
// attachment order.
//
// LOCK ORDERING:
// 1. publishMu - serializes Publish and termination so every subscriber
// observes one order
// 2. mu - protects subscribers and the terminal state
//
// Subscribe and Cancel only take mu, so sinks may subscribe or cancel from
// inside Next. Sinks must not publish to, or terminate, the broadcaster that is
// delivering to them.
type Broadcaster[T any] struct {
	publishMu sync.Mutex

	mu sync.Mutex
	// subscribers is replaced, never mutated in place, so a publisher can
	// iterate a snapshot without holding mu.
	subscribers []*subscriber[T]
	terminated  bool
	err         error
}

type subscriber[T any] struct {
	sink   Sink[T]
	active atomic.Bool
}

// New creates an active broadcaster without subscribers.
func New[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{}
}

// Subscribe attaches sink. If the broadcaster already terminated, the stored
// terminal signal is delivered to sink before Subscribe returns and the
// returned subscription is inert.
func (b *Broadcaster[T]) Subscribe(sink Sink[T]) *Subscription {
	sub := &subscriber[T]{sink: sink}
	sub.active.Store(true)

	b.mu.Lock()
	if b.terminated {
		err := b.err
		b.mu.Unlock()

		sub.active.Store(false)
		sink.done(err)
		return &Subscription{cancel: func() {}}
	}
	b.subscribers = append(slices.Clip(b.subscribers), sub)
	b.mu.Unlock()

	return &Subscription{cancel: func() { b.detach(sub) }}
}

// Publish delivers value to every attached subscriber. It reports false, and
// delivers nothing, once the broadcaster terminated.
func (b *Broadcaster[T]) Publish(value T) bool {
	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	b.mu.Lock()
	if b.terminated {
		b.mu.Unlock()
		return false
	}
	subscribers := b.subscribers
	b.mu.Unlock()

	for _, sub := range subscribers {
		if sub.active.Load() {
			sub.sink.next(value)
		}
	}
	return true
}

// Complete terminates the broadcaster normally.
func (b *Broadcaster[T]) Complete() bool {
	return b.terminate(nil)
}

// Fail terminates the broadcaster with err. A nil err is a completion.
func (b *Broadcaster[T]) Fail(err error) bool {
	return b.terminate(err)
}

func (b *Broadcaster[T]) terminate(err error) bool {
	b.publishMu.Lock()
	defer b.publishMu.Unlock()

	b.mu.Lock()
	if b.terminated {
		b.mu.Unlock()
		return false
	}
	b.terminated = true
	b.err = err
	subscribers := b.subscribers
	b.subscribers = nil
	b.mu.Unlock()

	for _, sub := range subscribers {
		if sub.active.CompareAndSwap(true, false) {
			sub.sink.done(err)
		}
	}
	return true
}

// Terminated reports whether the broadcaster terminated, and with which error.
func (b *Broadcaster[T]) Terminated() (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.terminated, b.err
}

// Subscribers returns the number of attached subscribers.
func (b *Broadcaster[T]) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}

func (b *Broadcaster[T]) detach(sub *subscriber[T]) {
	if !sub.active.CompareAndSwap(true, false) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = slices.DeleteFunc(slices.Clone(b.subscribers), func(s *subscriber[T]) bool {
		return s == sub
	})
}

// Subscription is the handle of one attached sink.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel detaches the sink. No delivery starts after Cancel returns; the sink
// does not receive the terminal signal. Cancel is idempotent and has no effect
// on other subscribers or on the publisher.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

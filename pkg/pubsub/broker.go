// Package pubsub delivers state changes to interested subscribers without the
// publisher knowing who they are.
package pubsub

import (
	"sync"

	"go.uber.org/zap"
)

// Handler receives published values.
type Handler[T any] func(T)

// Broker fans a value out to every subscriber. Delivery is synchronous and in
// subscription order, so a publisher observes all handlers as having run when
// Publish returns.
type Broker[T any] struct {
	mu     sync.RWMutex
	next   int
	subs   map[int]Handler[T]
	order  []int
	closed bool
	logger *zap.Logger
}

func New[T any](logger *zap.Logger) *Broker[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Broker[T]{subs: map[int]Handler[T]{}, logger: logger}
}

// Subscribe registers h and returns a func that removes it. Subscribing to a
// closed broker is a no-op.
func (b *Broker[T]) Subscribe(h Handler[T]) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return func() {}
	}
	id := b.next
	b.next++
	b.subs[id] = h
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Broker[T]) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
	for i, x := range b.order {
		if x == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Publish delivers v to every current subscriber. A panicking handler is
// logged and does not stop delivery to the rest.
func (b *Broker[T]) Publish(v T) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	handlers := make([]Handler[T], 0, len(b.order))
	for _, id := range b.order {
		handlers = append(handlers, b.subs[id])
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.deliver(h, v)
	}
}

func (b *Broker[T]) deliver(h Handler[T], v T) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic in subscriber", zap.Any("recovered", r))
		}
	}()
	h(v)
}

// Len returns the number of subscribers.
func (b *Broker[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close drops every subscriber. Later publishes are ignored.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.subs = map[int]Handler[T]{}
	b.order = nil
}

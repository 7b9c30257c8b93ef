package event

import (
	"errors"
	"sync"
)

// ErrBusFull is returned by Subscribe once the fixed subscriber table
// has been exhausted.
var ErrBusFull = errors.New("event: subscriber table full")

// subscriber pairs a destination channel with a bitmask of the event
// types it wants delivered.
type subscriber struct {
	mask uint32
	ch   chan Event
}

// EventBus is a small publish/subscribe dispatcher for decoded-command
// events. Capacity is fixed at 8 subscribers and 32 event types (one bit
// each in the mask), which keeps Subscribe and Publish allocation-free.
//
// It is safe for concurrent use: publishes may come from several
// goroutines, and subscriptions may be added while publishing is active.
type EventBus struct {
	mu   sync.RWMutex
	subs [8]subscriber
	n    int
}

// NewBus creates a ready-to-use [EventBus].
func NewBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers ch to receive events matching any of the given
// types. The caller owns ch and must drain it; a full channel causes
// drops, not blocking.
func (b *EventBus) Subscribe(
	ch chan Event,
	types ...EventType,
) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.n >= len(b.subs) {
		return ErrBusFull
	}

	var mask uint32
	for _, t := range types {
		mask |= 1 << t
	}

	b.subs[b.n] = subscriber{mask: mask, ch: ch}
	b.n++
	return nil
}

// Publish delivers e to every subscriber whose mask matches e.Type.
// Delivery never blocks: a stalled consumer loses the event rather than
// stalling the publisher, so the poll loop can never be held up by a
// slow indicator.
func (b *EventBus) Publish(
	e Event,
) {
	b.mu.RLock()
	n := b.n
	b.mu.RUnlock()

	for i := 0; i < n; i++ {
		if b.subs[i].mask&(1<<e.Type) != 0 {
			select {
			case b.subs[i].ch <- e:
			default:
			}
		}
	}
}

package controller

import (
	"context"

	"github.com/sawmill/pool-core/internal/periph"
)

// Input queues debounced operator events for the control loop. Producers
// are the button poller, the rotary consumer and the status web service;
// the control loop is the only consumer.
type Input struct {
	ch chan Event
}

// NewInput returns an input queue. The buffer absorbs a burst of button
// presses while the loop is inside a blocking sequencer wait.
func NewInput() *Input {
	return &Input{ch: make(chan Event, 8)}
}

// Push enqueues an event without blocking. It reports false when the
// queue is full, which only happens while the loop is mid-settle; the
// press is dropped exactly as it would be on the physical panel.
func (in *Input) Push(ev Event) bool {
	select {
	case in.ch <- ev:
		return true
	default:
		return false
	}
}

// Events exposes the queue to the control loop.
func (in *Input) Events() <-chan Event {
	return in.ch
}

// RotaryNotifier decouples the rotary encoder's change interrupt from
// debounce and decoding. The interrupt-side Notify never blocks; a single
// consumer goroutine drains the slot, reads the quadrature state and
// pushes the resulting temperature pulses into the Input queue.
type RotaryNotifier struct {
	pending chan struct{}
}

// NewRotaryNotifier returns an empty notifier.
func NewRotaryNotifier() *RotaryNotifier {
	return &RotaryNotifier{pending: make(chan struct{}, 1)}
}

// Notify signals that the encoder lines changed. Multiple signals before
// the consumer runs collapse into one, which is correct: the consumer
// reads the accumulated position, not per-edge deltas.
func (n *RotaryNotifier) Notify() {
	select {
	case n.pending <- struct{}{}:
	default:
	}
}

// Pending exposes the notification slot to the consumer goroutine.
func (n *RotaryNotifier) Pending() <-chan struct{} {
	return n.pending
}

// RunRotaryConsumer drains the notifier, reads the encoder's accumulated
// position and pushes one temperature pulse per detent into the input
// queue. It returns when ctx is cancelled. Pulses dropped by a full
// queue are lost, same as button presses. The detent count is zero at
// power-up, so detents that land before the consumer starts still
// produce their pulses on the first drain.
func RunRotaryConsumer(ctx context.Context, n *RotaryNotifier, enc periph.RotaryEncoder, in *Input) {
	last := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-n.Pending():
		}
		pos := enc.Position()
		for ; last < pos; last++ {
			in.Push(EvTempUp)
		}
		for ; last > pos; last-- {
			in.Push(EvTempDown)
		}
	}
}

// Package ir adapts an interrupt-driven infrared decoder into the
// poll/consume/resume surface the remote service works against.
package ir

import "sync/atomic"

// Result is one completed decode produced by the protocol decoder.
type Result struct {
	Code    uint32 // raw protocol frame
	Address uint16
	Command uint16 // logical button/function identifier
	Repeat  bool   // held-button repeat frame
}

// Receiver latches the most recent decode until the consumer
// acknowledges it. The decoder callback runs in interrupt context, the
// poll loop in a goroutine; the ready flag is the only signal crossing
// that boundary, and the result is written strictly before the flag.
type Receiver struct {
	ready atomic.Bool
	last  Result
}

// Push records a completed decode. While a previous decode is still
// unconsumed the new one is dropped: nothing new is reported until
// Resume acknowledges the pending result.
func (r *Receiver) Push(res Result) {
	if r.ready.Load() {
		return
	}
	r.last = res
	r.ready.Store(true)
}

// Decode reports whether a completed decode is pending and returns it.
// It never blocks and leaves the pending state untouched, so repeated
// calls return the same result until Resume is called.
func (r *Receiver) Decode() (Result, bool) {
	if !r.ready.Load() {
		return Result{}, false
	}
	return r.last, true
}

// Resume discards the pending decode and re-arms the receiver for the
// next signal.
func (r *Receiver) Resume() {
	r.ready.Store(false)
}

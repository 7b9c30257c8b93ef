//go:build tinygo

package ir

import (
	"machine"

	"tinygo.org/x/drivers/irremote"
)

// PinReceiver binds the latch to the NEC decoder in
// tinygo.org/x/drivers/irremote, which samples the demodulated receiver
// output through pin interrupts.
type PinReceiver struct {
	Receiver

	dev irremote.ReceiverDevice
}

// NewPinReceiver creates a receiver bound to pin. The pin must carry the
// demodulated (active low) output of an IR receiver module such as a
// TSOP38238.
func NewPinReceiver(pin machine.Pin) *PinReceiver {
	return &PinReceiver{dev: irremote.NewReceiver(pin)}
}

// Configure sets up the pin interrupt and routes completed decodes into
// the latch.
func (r *PinReceiver) Configure() {
	r.dev.Configure()
	r.dev.SetCommandHandler(func(d irremote.Data) {
		r.Push(Result{
			Code:    d.Code,
			Address: d.Address,
			Command: d.Command,
			Repeat:  d.Flags&irremote.DataFlagIsRepeat != 0,
		})
	})
}

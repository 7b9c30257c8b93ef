package event

type EventType uint8

const (
	// EventCodeReceived is published for every freshly decoded IR command.
	EventCodeReceived EventType = iota
	// EventCodeRepeated is published when the decoder flags the frame as a
	// held-button repeat of the previous command.
	EventCodeRepeated
)

// Event carries one decoded IR command. A fixed-size value type so the
// publish path does not allocate.
type Event struct {
	Type    EventType
	Command uint16
	Address uint16
}

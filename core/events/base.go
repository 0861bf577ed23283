package events

import "time"

type Kind string

// Event is one notification relayed from the positioning subsystem. The
// concrete type identifies the variant; Kind gives the same information as a
// stable string.
type Event interface {
	Kind() Kind
	Timestamp() time.Time
}

type Base struct {
	kind      Kind
	timestamp time.Time
}

func NewBase(kind Kind) Base {
	return Base{kind: kind, timestamp: time.Now()}
}

func (b Base) Kind() Kind {
	return b.kind
}

// Timestamp is when the callback was received, not when the subsystem
// measured anything.
func (b Base) Timestamp() time.Time {
	return b.timestamp
}

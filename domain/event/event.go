package event

import (
	"time"
)

// DomainEvent marks facts produced by the domain and distributed to live
// subscribers by the runtime fan-out.
type DomainEvent interface {
	OccurredAt() time.Time
}

// MessageCreated is emitted once a message has been accepted and stored.
type MessageCreated struct {
	Content string
	At      time.Time
}

func (m MessageCreated) OccurredAt() time.Time {
	return m.At
}

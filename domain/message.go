// Package domain contains core concepts of the message service.
// Messages are immutable once constructed and validated by the domain.
package domain

import (
	"fmt"
	"time"

	"message-lab/errors"
)

// Message represents an immutable message with its creation instant.
type Message struct {
	Content string
	At      time.Time
}

// NewMessage builds a validated Message. The instant is normalized to UTC;
// a zero instant is rejected with ErrInvalidTimestamp.
func NewMessage(content string, at time.Time) (Message, error) {
	if at.IsZero() {
		return Message{}, fmt.Errorf("%w: zero instant", errors.ErrInvalidTimestamp)
	}
	return Message{Content: content, At: at.UTC()}, nil
}

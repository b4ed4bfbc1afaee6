package domain

import (
	"time"
)

// CreateMessageCommand carries a caller request to record a message.
// CreatedAt is stamped by the server, never taken from the caller.
type CreateMessageCommand struct {
	Content   string `validate:"required"`
	CreatedAt time.Time
}

package server

import (
	"encoding/json"

	"github.com/samber/lo"

	"message-lab/domain"
)

// messageResponse is the wire shape of one served message. The timestamp
// value is produced by the configured codec, so it may be a JSON string or
// a JSON number depending on deployment.
type messageResponse struct {
	Content   string          `json:"content"`
	Timestamp json.RawMessage `json:"timestamp"`
}

// createMessageRequest carries the body of POST /messages.
type createMessageRequest struct {
	Content string `json:"content"`
}

func toMessageResponse(message domain.Message, codec domain.TimestampCodec) messageResponse {
	return messageResponse{
		Content:   message.Content,
		Timestamp: codec.Encode(message.At),
	}
}

// toMessageResponses never returns nil, so an empty feed encodes as [].
func toMessageResponses(messages []domain.Message, codec domain.TimestampCodec) []messageResponse {
	return lo.Map(messages, func(item domain.Message, _ int) messageResponse {
		return toMessageResponse(item, codec)
	})
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"message-lab/domain"
	"message-lab/errors"
)

// messageDTO is the wire shape of the remote feed:
// {"value": string, "timestamp": epoch milliseconds}.
// It is independent from the shape this service exposes and is never
// reconciled with it.
type messageDTO struct {
	Value     string          `json:"value"`
	Timestamp json.RawMessage `json:"timestamp"`
}

var feedCodec = domain.EpochMillisCodec{}

// MessageClient is a typed client for a remote message feed. Every failure
// it returns belongs to the error taxonomy.
type MessageClient struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewMessageClient wires a feed client. The http.Client is injected so the
// caller owns timeouts and transport settings.
func NewMessageClient(baseURL string, httpClient *http.Client, log *slog.Logger) *MessageClient {
	return &MessageClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

// GetMessages fetches the feed for one topic with a single outbound call.
// The topic is URL-escaped but otherwise passed through unvalidated. The
// response list converts entirely or not at all: the first bad entry aborts
// with its taxonomy error.
func (c *MessageClient) GetMessages(ctx context.Context, topic string) ([]domain.Message, error) {
	endpoint := fmt.Sprintf("%s/messages?topicName=%s", c.baseURL, url.QueryEscape(topic))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Normalize(err)
	}

	c.log.Debug("Fetching messages", "endpoint", endpoint)
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, errors.Normalize(err)
	}
	// Drain whatever remains so the transport can reuse the connection.
	defer func() {
		_, _ = io.Copy(io.Discard, response.Body)
		_ = response.Body.Close()
	}()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, &errors.UnexpectedStatusError{Code: response.StatusCode}
	}

	var dtos []messageDTO
	if err := json.NewDecoder(response.Body).Decode(&dtos); err != nil {
		return nil, errors.Unexpected(fmt.Errorf("%w: %v", errors.ErrDecodeFailure, err))
	}

	messages, err := toMessages(dtos)
	if err != nil {
		return nil, err
	}
	c.log.Debug("Messages fetched", "topic", topic, "count", len(messages))
	return messages, nil
}

// toMessages converts the whole list or nothing.
func toMessages(dtos []messageDTO) ([]domain.Message, error) {
	messages := make([]domain.Message, 0, len(dtos))
	for _, dto := range dtos {
		at, err := feedCodec.Decode(dto.Timestamp)
		if err != nil {
			return nil, err
		}
		message, err := domain.NewMessage(dto.Value, at)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

//go:generate go run go.uber.org/mock/mockgen -source=message_service.go -destination=../mocks/mock_message_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"message-lab/domain"
	"message-lab/domain/event"
	"message-lab/errors"
	"message-lab/observability"
	"message-lab/repositories"
)

var validate = validator.New()

type IMessageService interface {
	ListMessages(ctx context.Context) ([]domain.Message, error)
	CreateMessage(ctx context.Context, cmd domain.CreateMessageCommand) (domain.Message, error)
}

// MessageService owns the message use cases: listing the stored feed and
// recording new messages. An accepted message is stored first, then offered
// to the event channel for live delivery. A full channel drops the event
// rather than delaying the caller.
type MessageService struct {
	repository       repositories.IMessageRepository
	events           chan<- event.DomainEvent
	monitor          *observability.Monitor
	log              *slog.Logger
	maxContentLength int
}

func NewMessageService(
	repository repositories.IMessageRepository,
	events chan<- event.DomainEvent,
	monitor *observability.Monitor,
	log *slog.Logger,
	maxContentLength int,
) *MessageService {
	return &MessageService{
		repository:       repository,
		events:           events,
		monitor:          monitor,
		log:              log,
		maxContentLength: maxContentLength,
	}
}

func (s *MessageService) ListMessages(_ context.Context) ([]domain.Message, error) {
	messages, err := s.repository.GetMessages()
	if err != nil {
		return nil, errors.Normalize(err)
	}
	return messages, nil
}

func (s *MessageService) CreateMessage(_ context.Context, cmd domain.CreateMessageCommand) (domain.Message, error) {
	if err := validate.Struct(cmd); err != nil {
		return domain.Message{}, fmt.Errorf("%w: %v", errors.ErrDecodeFailure, err)
	}
	if s.maxContentLength > 0 && len(cmd.Content) > s.maxContentLength {
		return domain.Message{}, fmt.Errorf("%w: content exceeds %d bytes", errors.ErrDecodeFailure, s.maxContentLength)
	}

	message, err := domain.NewMessage(cmd.Content, cmd.CreatedAt)
	if err != nil {
		return domain.Message{}, err
	}

	if err := s.repository.StoreMessage(message); err != nil {
		return domain.Message{}, errors.Normalize(err)
	}
	s.monitor.IncrMessagesCreated()

	s.publish(event.MessageCreated{Content: message.Content, At: message.At})
	return message, nil
}

// publish offers the event without blocking; live delivery is best-effort.
func (s *MessageService) publish(e event.DomainEvent) {
	select {
	case s.events <- e:
	default:
		s.monitor.IncrEventsDropped()
		s.log.Warn("Event channel full, dropping event")
	}
}

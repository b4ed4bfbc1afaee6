//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"log/slog"
	"sync"

	"message-lab/domain"
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
	GetMessages() ([]domain.Message, error)
}

// MemoryMessageRepository keeps messages in process memory, append order
// preserved. Reads hand out a copy so callers never observe later writes
// through a shared slice.
type MemoryMessageRepository struct {
	mu       sync.RWMutex
	messages []domain.Message
	log      *slog.Logger
}

func NewMemoryMessageRepository(log *slog.Logger) *MemoryMessageRepository {
	return &MemoryMessageRepository{log: log}
}

func (m *MemoryMessageRepository) StoreMessage(message domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	m.log.Debug("Message stored", "count", len(m.messages))
	return nil
}

func (m *MemoryMessageRepository) GetMessages() ([]domain.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Message, len(m.messages))
	copy(out, m.messages)
	return out, nil
}

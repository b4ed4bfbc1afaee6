package workers

import (
	"context"
	"log/slog"
	"time"

	"message-lab/contract"
	"message-lab/domain/event"
)

// EventFanout broadcasts domain events to the currently registered sinks.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering, durability, or retries. EventFanout is not a message broker.
//
// It is intended for live subscribers and side effects, not for core domain
// logic.
type EventFanout struct {
	log             *slog.Logger
	events          <-chan event.DomainEvent
	registry        contract.IRegistry
	deliveryTimeout time.Duration
}

func NewEventFanout(
	log *slog.Logger,
	events <-chan event.DomainEvent,
	registry contract.IRegistry,
	deliveryTimeout time.Duration,
) *EventFanout {
	return &EventFanout{
		log:             log,
		events:          events,
		registry:        registry,
		deliveryTimeout: deliveryTimeout,
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fan-out")
			return nil
		}
	}
}

// fanout delivers one event to every registered sink. A slow sink loses only
// its own delivery; the loop moves on after deliveryTimeout.
func (w *EventFanout) fanout(ctx context.Context, evt event.DomainEvent) {
	for _, s := range w.registry.Sinks() {
		deliveryCtx, cancel := context.WithTimeout(ctx, w.deliveryTimeout)
		if err := s.Consume(deliveryCtx, evt); err != nil {
			w.log.Warn("Sink delivery failed", "error", err)
		}
		cancel()
	}
}

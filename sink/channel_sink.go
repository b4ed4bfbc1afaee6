package sink

import (
	"context"

	"message-lab/domain/event"
	"message-lab/observability"
)

// ChannelSink bridges the fan-out worker and a single live subscriber.
// Consume forwards the event to the owning connection through a buffered
// channel; a full buffer drops the event instead of blocking the fan-out.
type ChannelSink struct {
	events  chan event.DomainEvent
	monitor *observability.Monitor
}

func NewChannelSink(bufferSize int, monitor *observability.Monitor) *ChannelSink {
	return &ChannelSink{
		events:  make(chan event.DomainEvent, bufferSize),
		monitor: monitor,
	}
}

// Events is read by the connection's write loop.
func (s *ChannelSink) Events() <-chan event.DomainEvent {
	return s.events
}

// Consume is called by the fan-out worker.
// It hands the event to the owner of the channel; the connection handler
// takes it from there.
func (s *ChannelSink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case s.events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		s.monitor.IncrEventsDropped()
		return nil
	}
}

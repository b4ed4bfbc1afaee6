package runtime

import (
	"sync"

	"message-lab/contract"
	"message-lab/observability"
)

// Registry tracks the live subscriber connections. Each subscriber owns one
// sink; the fan-out worker reads the current set on every event.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]contract.EventSink
	monitor  *observability.Monitor
}

func NewRegistry(monitor *observability.Monitor) *Registry {
	return &Registry{
		sessions: make(map[string]contract.EventSink),
		monitor:  monitor,
	}
}

// Sinks returns the sinks of every currently subscribed connection.
func (r *Registry) Sinks() []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sinks := make([]contract.EventSink, 0, len(r.sessions))
	for _, sink := range r.sessions {
		sinks = append(sinks, sink)
	}
	return sinks
}

// Subscribe registers a subscriber connection. A second subscription under
// the same id replaces the previous sink without growing the count.
func (r *Registry) Subscribe(subscriberID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[subscriberID]; !exists {
		r.monitor.IncrSubscribers()
	}
	r.sessions[subscriberID] = sink
}

// Unsubscribe drops a subscriber connection; unknown ids are ignored.
func (r *Registry) Unsubscribe(subscriberID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[subscriberID]; exists {
		delete(r.sessions, subscriberID)
		r.monitor.DecrSubscribers()
	}
}

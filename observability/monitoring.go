package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// ProcessStats is the latest sample of the server process, refreshed by the
// monitor worker.
type ProcessStats struct {
	RssBytes   uint64    `json:"rss_bytes"`
	CpuPercent float64   `json:"cpu_percent"`
	Status     string    `json:"status"`
	AllocMemMb uint64    `json:"alloc_mem_mb"`
	NumGC      uint32    `json:"num_gc"`
	Goroutines int       `json:"goroutines"`
	SampledAt  time.Time `json:"sampled_at"`
}

// HealthSnapshot aggregates counters and process stats for the health
// endpoint.
type HealthSnapshot struct {
	Status          string       `json:"status"`
	UptimeSeconds   int64        `json:"uptime_seconds"`
	Requests        uint64       `json:"requests"`
	MessagesCreated uint64       `json:"messages_created"`
	EventsDropped   uint64       `json:"events_dropped"`
	Subscribers     int64        `json:"subscribers"`
	Process         ProcessStats `json:"process"`
}

// Monitor collects service telemetry: atomic counters incremented on the hot
// path and a process sample written by the monitor worker.
type Monitor struct {
	log       *slog.Logger
	startedAt time.Time

	mu          sync.RWMutex
	latestStats ProcessStats

	requests        uint64
	messagesCreated uint64
	eventsDropped   uint64
	subscribers     int64
}

func NewMonitor(log *slog.Logger) *Monitor {
	return &Monitor{log: log, startedAt: time.Now()}
}

func (m *Monitor) IncrRequests() {
	atomic.AddUint64(&m.requests, 1)
}

func (m *Monitor) IncrMessagesCreated() {
	atomic.AddUint64(&m.messagesCreated, 1)
}

func (m *Monitor) IncrEventsDropped() {
	atomic.AddUint64(&m.eventsDropped, 1)
}

func (m *Monitor) IncrSubscribers() {
	atomic.AddInt64(&m.subscribers, 1)
}

func (m *Monitor) DecrSubscribers() {
	atomic.AddInt64(&m.subscribers, -1)
}

// UpdateProcessStats stores a fresh OS-level sample and completes it with Go
// runtime numbers.
func (m *Monitor) UpdateProcessStats(rssBytes uint64, cpuPercent float64, status string) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.latestStats = ProcessStats{
		RssBytes:   rssBytes,
		CpuPercent: cpuPercent,
		Status:     status,
		AllocMemMb: ms.Alloc / 1024 / 1024,
		NumGC:      ms.NumGC,
		Goroutines: runtime.NumGoroutine(),
		SampledAt:  time.Now(),
	}
	m.log.Debug("Process stats updated",
		"rss_bytes", rssBytes,
		"cpu_percent", cpuPercent,
		"goroutines", m.latestStats.Goroutines,
	)
}

// Snapshot returns a consistent view for rendering.
func (m *Monitor) Snapshot() HealthSnapshot {
	m.mu.RLock()
	process := m.latestStats
	m.mu.RUnlock()

	return HealthSnapshot{
		Status:          "ok",
		UptimeSeconds:   int64(time.Since(m.startedAt).Seconds()),
		Requests:        atomic.LoadUint64(&m.requests),
		MessagesCreated: atomic.LoadUint64(&m.messagesCreated),
		EventsDropped:   atomic.LoadUint64(&m.eventsDropped),
		Subscribers:     atomic.LoadInt64(&m.subscribers),
		Process:         process,
	}
}

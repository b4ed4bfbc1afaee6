package workers

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"message-lab/observability"
)

func TestMonitorWorker_PublishesSamples(t *testing.T) {
	req := require.New(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	monitor := observability.NewMonitor(logger)
	worker := NewMonitorWorker(logger, monitor, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	// Wait until at least one sample landed
	req.Eventually(func() bool {
		return !monitor.Snapshot().Process.SampledAt.IsZero()
	}, time.Second, 10*time.Millisecond)

	snapshot := monitor.Snapshot()
	req.NotZero(snapshot.Process.RssBytes)
	req.NotZero(snapshot.Process.Goroutines)

	cancel()
	select {
	case err := <-done:
		req.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		req.Fail("Worker did not stop on context cancel")
	}
}

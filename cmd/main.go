package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"

	"message-lab/auth"
	"message-lab/domain"
	"message-lab/domain/event"
	"message-lab/infrastructure/http/server"
	"message-lab/internal"
	"message-lab/observability"
	"message-lab/repositories"
	"message-lab/runtime"
	"message-lab/runtime/workers"
	"message-lab/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// This pattern is preferred over calling os.Exit or panic directly because:
// 1. It ensures all 'defer' statements are executed before the program exits.
// 2. It improves testability by decoupling the initialization logic from the main entry point.
// 3. It provides a structured way to handle graceful shutdowns for HTTP and background workers.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Wire the message pipeline
	monitor := observability.NewMonitor(log)
	registry := runtime.NewRegistry(monitor)
	messageRepository := repositories.NewMemoryMessageRepository(log)
	events := make(chan event.DomainEvent, config.BufferSize)
	messageService := services.NewMessageService(
		messageRepository, events, monitor, log, config.MaxContentLength,
	)

	authorizer := auth.NewAuthorizer(
		auth.Credential{Value: config.Secret},
		auth.ExtractorFromString(config.AuthScheme),
	)
	codec := domain.CodecFromString(config.TimestampFormat)

	// 3. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Background workers under supervision
	sup := workers.NewSupervisor(log)
	sup.Add(
		workers.NewEventFanout(log, events, registry, config.SinkTimeout),
		workers.NewMonitorWorker(log, monitor, config.MetricInterval),
	)
	workersDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(workersDone)
	}()

	// 5. Optional inspection endpoint
	if config.DebugPort != nil && *config.DebugPort > 0 {
		internal.StartDebugServer(log, messageRepository, *config.DebugPort, "/inspect", func() map[string]any {
			snapshot := monitor.Snapshot()
			return map[string]any{
				"Status":      snapshot.Status,
				"Uptime":      fmt.Sprintf("%ds", snapshot.UptimeSeconds),
				"Requests":    snapshot.Requests,
				"Messages":    snapshot.MessagesCreated,
				"Dropped":     snapshot.EventsDropped,
				"Subscribers": snapshot.Subscribers,
			}
		})
		log.Info("Debug server started",
			"url", fmt.Sprintf("http://localhost:%d/inspect", *config.DebugPort))
	}

	// 6. HTTP Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	api := server.NewServer(
		log, messageService, authorizer, registry, monitor, codec, config.ConnectionBufferSize,
	)
	httpServer := &http.Server{
		Addr:         address,
		Handler:      api.Router(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	// Use an error channel to capture ListenAndServe() issues
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", address, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP shutdown failed", "error", err)
	}
	sup.Stop()
	<-workersDone
	log.Info("Program stopped cleanly")

	return nil
}

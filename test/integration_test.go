package test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"message-lab/auth"
	"message-lab/domain"
	"message-lab/domain/event"
	"message-lab/infrastructure/http/server"
	"message-lab/observability"
	"message-lab/repositories"
	"message-lab/runtime"
	"message-lab/runtime/workers"
	"message-lab/services"
	"message-lab/sink"
)

const integrationSecret = "integration-secret"

func Test_Scenario(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	req := require.New(t)

	// 1. Wire the real pipeline, repository to fan-out
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	monitor := observability.NewMonitor(log)
	registry := runtime.NewRegistry(monitor)
	messageRepository := repositories.NewMemoryMessageRepository(log)
	events := make(chan event.DomainEvent, 16)
	messageService := services.NewMessageService(messageRepository, events, monitor, log, 512)

	supervisor := workers.NewSupervisor(log)
	supervisor.Add(workers.NewEventFanout(log, events, registry, time.Second))
	go supervisor.Run(ctx)

	// Clean everything at the end of the test
	t.Cleanup(cancel)

	// 2. One live subscriber listening through the registry
	subscriberSink := sink.NewChannelSink(4, monitor)
	registry.Subscribe("integration-subscriber", subscriberSink)

	// 3. HTTP surface on a real listener
	authorizer := auth.NewAuthorizer(
		auth.Credential{Value: integrationSecret},
		auth.HeaderExtractor{Name: auth.DefaultSecretHeader},
	)
	api := server.NewServer(log, messageService, authorizer, registry, monitor, domain.ISO8601Codec{}, 4)
	srv := httptest.NewServer(api.Router())
	t.Cleanup(srv.Close)

	// When a message is posted over HTTP
	content := "this message will self destruct in 5 seconds"
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL+"/messages",
		strings.NewReader(`{"content": "`+content+`"}`))
	req.NoError(err)
	request.Header.Set(auth.DefaultSecretHeader, integrationSecret)

	response, err := srv.Client().Do(request)
	req.NoError(err)
	req.Equal(http.StatusOK, response.StatusCode)
	req.NoError(response.Body.Close())

	// Then the message has reached the repository
	stored, err := messageRepository.GetMessages()
	req.NoError(err)
	req.Len(stored, 1)
	req.Equal(content, stored[0].Content)
	req.Equal(uint64(1), monitor.Snapshot().MessagesCreated)

	// And the subscriber receives the live event through the fan-out
	select {
	case evt := <-subscriberSink.Events():
		created, ok := evt.(event.MessageCreated)
		req.True(ok)
		req.Equal(content, created.Content)
	case <-time.After(2 * time.Second):
		req.Fail("Timeout: event has never reached the subscriber")
	}

	// And the feed serves it back with an encoded timestamp
	feedResponse, err := srv.Client().Get(srv.URL + "/messages")
	req.NoError(err)
	defer feedResponse.Body.Close()
	req.Equal(http.StatusOK, feedResponse.StatusCode)

	var feed []struct {
		Content   string `json:"content"`
		Timestamp string `json:"timestamp"`
	}
	req.NoError(json.NewDecoder(feedResponse.Body).Decode(&feed))
	req.Len(feed, 1)
	req.Equal(content, feed[0].Content)
	req.Regexp(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`, feed[0].Timestamp)
}

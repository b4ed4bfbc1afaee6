package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"message-lab/auth"
	"message-lab/contract"
	"message-lab/domain"
	"message-lab/observability"
	"message-lab/services"
)

// Server exposes the message API over HTTP: the stored feed, authenticated
// creation, live delivery over WebSocket and a health snapshot.
type Server struct {
	log                  *slog.Logger
	messageService       services.IMessageService
	authorizer           *auth.Authorizer
	registry             contract.IRegistry
	monitor              *observability.Monitor
	codec                domain.TimestampCodec
	connectionBufferSize int
	now                  func() time.Time
}

func NewServer(log *slog.Logger, messageService services.IMessageService,
	authorizer *auth.Authorizer, registry contract.IRegistry,
	monitor *observability.Monitor, codec domain.TimestampCodec,
	connectionBufferSize int) *Server {
	return &Server{
		log:                  log,
		messageService:       messageService,
		authorizer:           authorizer,
		registry:             registry,
		monitor:              monitor,
		codec:                codec,
		connectionBufferSize: connectionBufferSize,
		now:                  time.Now,
	}
}

// Router assembles the route table. Unmatched paths get the router's own
// 404, outside the error boundary.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter()
	router.Handle("/messages", s.handle(s.listMessages)).Methods(http.MethodGet)
	router.Handle("/messages", s.handle(s.createMessage)).Methods(http.MethodPost)
	router.Handle("/health", s.handle(s.health)).Methods(http.MethodGet)
	router.HandleFunc("/ws", s.serveWs).Methods(http.MethodGet)
	router.Use(s.requestLogger)
	return router
}

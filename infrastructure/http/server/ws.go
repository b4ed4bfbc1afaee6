package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"message-lab/domain"
	"message-lab/domain/event"
	"message-lab/sink"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serveWs upgrades the connection and streams created messages to it until
// the peer goes away. Each connection owns one channel sink registered
// under a fresh subscriber id; teardown always unregisters it.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	subscriberID := uuid.NewString()
	connSink := sink.NewChannelSink(s.connectionBufferSize, s.monitor)
	s.registry.Subscribe(subscriberID, connSink)
	s.log.Info("Subscriber connected", "subscriber_id", subscriberID)

	go s.writePump(conn, connSink, subscriberID)
	go s.readPump(conn, subscriberID)
}

// readPump discards inbound frames. It exists to answer the keepalive and
// to notice the disconnect, which tears the subscription down.
func (s *Server) readPump(conn *websocket.Conn, subscriberID string) {
	defer func() {
		s.registry.Unsubscribe(subscriberID)
		_ = conn.Close()
		s.log.Info("Subscriber disconnected", "subscriber_id", subscriberID)
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("WebSocket read failed", "subscriber_id", subscriberID, "error", err)
			}
			return
		}
	}
}

// writePump pushes fanned-out events and keepalive pings to the peer.
func (s *Server) writePump(conn *websocket.Conn, connSink *sink.ChannelSink, subscriberID string) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case evt := <-connSink.Events():
			switch e := evt.(type) {
			case event.MessageCreated:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				payload := toMessageResponse(domain.Message{Content: e.Content, At: e.At}, s.codec)
				if err := conn.WriteJSON(payload); err != nil {
					s.log.Error("Failed to push event to subscriber",
						"subscriber_id", subscriberID, "error", err)
					return
				}
			default:
				s.log.Debug("Skipping event without a wire shape", "event", e)
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

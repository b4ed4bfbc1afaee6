package e2e

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"message-lab/auth"
)

type testMessageFlowSuite struct {
	BaseHttpSuite
}

func TestMessageFlowSuite(t *testing.T) {
	suite.Run(t, &testMessageFlowSuite{})
}

type messagePayload struct {
	Content   string          `json:"content"`
	Timestamp json.RawMessage `json:"timestamp"`
}

func (s *testMessageFlowSuite) TestFullMessageFlow() {
	content := "e2e " + uuid.NewString()

	// --- STEP 0: HEALTH ---
	s.Run("Step 0: Server is healthy", func() {
		s.Step(s.T(), "Checking /health")
		response, body := s.Do(s.T(), s.Get("/health"))
		s.Require().Equal(http.StatusOK, response.StatusCode)
		s.Require().Contains(string(body), `"status":"ok"`)
	})

	// --- STEP 1: LIVE SUBSCRIPTION ---
	// Opened before the creation so the fan-out has a subscriber to reach.
	var conn *websocket.Conn
	s.Run("Step 1: Open a live subscription", func() {
		s.Step(s.T(), "Dialing /ws")
		wsURL := "ws" + strings.TrimPrefix(s.Config.ServerAddr, "http") + "/ws"
		var err error
		conn, _, err = websocket.DefaultDialer.Dial(wsURL, nil)
		s.Require().NoError(err, "Failed to open WebSocket at "+wsURL)
	})
	defer func() {
		if conn != nil {
			_ = conn.Close()
		}
	}()

	// --- STEP 2: AUTH GUARD ---
	s.Run("Step 2: Creation requires the shared secret", func() {
		s.Step(s.T(), "Posting without credential")
		request := s.Post("/messages", `{"content": "should not pass"}`)
		request.Header.Del(auth.DefaultSecretHeader)
		response, body := s.Do(s.T(), request)
		s.Require().Equal(http.StatusUnauthorized, response.StatusCode)
		s.Require().Contains(string(body), "missing credential")
	})

	// --- STEP 3: CREATE ---
	s.Run("Step 3: Authorized creation is accepted", func() {
		s.Step(s.T(), "Posting with credential")
		response, body := s.Do(s.T(), s.Post("/messages", `{"content": "`+content+`"}`))
		s.Require().Equal(http.StatusOK, response.StatusCode)

		var created messagePayload
		s.Require().NoError(json.Unmarshal(body, &created))
		s.Require().Equal(content, created.Content)
		s.Require().NotEmpty(created.Timestamp)
	})

	// --- STEP 4: READ BACK ---
	s.Run("Step 4: The feed serves the new message", func() {
		s.Step(s.T(), "Reading /messages")
		s.Eventually(func() bool {
			response, body := s.Do(s.T(), s.Get("/messages"))
			if response.StatusCode != http.StatusOK {
				return false
			}
			var feed []messagePayload
			if err := json.Unmarshal(body, &feed); err != nil {
				return false
			}
			for _, m := range feed {
				if m.Content == content {
					return true
				}
			}
			return false
		}, 10*time.Second, 500*time.Millisecond, "Created message never appeared in the feed")
	})

	// --- STEP 5: LIVE DELIVERY ---
	s.Run("Step 5: The subscriber receives the live event", func() {
		s.Step(s.T(), "Waiting on the WebSocket")
		s.Require().NoError(conn.SetReadDeadline(time.Now().Add(10 * time.Second)))
		for {
			var got messagePayload
			err := conn.ReadJSON(&got)
			s.Require().NoError(err, "WebSocket closed before delivering the message")
			if got.Content == content {
				return
			}
		}
	})
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"message-lab/domain"
	"message-lab/errors"
)

// listMessages serves the whole stored feed, oldest first. No credential
// is required to read.
func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) error {
	messages, err := s.messageService.ListMessages(r.Context())
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, toMessageResponses(messages, s.codec))
	return nil
}

// createMessage records a message for an authorized caller. The creation
// instant comes from the server clock, never from the payload, and the
// response echoes the stored resource.
func (s *Server) createMessage(w http.ResponseWriter, r *http.Request) error {
	if _, err := s.authorizer.Authorize(r.Header); err != nil {
		return err
	}

	var body createMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrDecodeFailure, err)
	}

	message, err := s.messageService.CreateMessage(r.Context(), domain.CreateMessageCommand{
		Content:   body.Content,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, toMessageResponse(message, s.codec))
	return nil
}

// health reports liveness together with the latest runtime counters.
func (s *Server) health(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, s.monitor.Snapshot())
	return nil
}

package server

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"message-lab/errors"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// handlerFunc is an HTTP handler that reports failure instead of rendering
// it. Rendering happens in exactly one place, the handle adapter.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// errorResponse is the uniform error body for every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// handle adapts a handlerFunc by resolving its error against the status
// table and writing the mapped body. Client faults log at Warn, everything
// else at Error, always with the request id.
func (s *Server) handle(next handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := next(w, r)
		if err == nil {
			return
		}

		status, message := errors.MapToHTTPStatus(err)
		logArgs := []any{
			"request_id", requestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"error", err,
		}
		if status >= http.StatusInternalServerError {
			s.log.Error("Request failed", logArgs...)
		} else {
			s.log.Warn("Request rejected", logArgs...)
		}

		writeJSON(w, status, errorResponse{Error: message})
	})
}

// requestLogger tags every request with an id, counts it and logs one line
// with the final status.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		s.monitor.IncrRequests()

		recorder := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(recorder, r.WithContext(ctx))

		s.log.Info("Request handled",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", time.Since(start).Round(time.Millisecond).String(),
		)
	})
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// responseRecorder captures the status written by the downstream handler.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack keeps the WebSocket upgrade working behind the recorder.
func (r *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

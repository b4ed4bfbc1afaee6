package e2e

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"

	"message-lab/auth"
)

type BaseHttpSuite struct {
	suite.Suite
	Config Config
	client *http.Client
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseHttpSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	if s.Config.ServerAddr == "" {
		s.T().Skip("SERVER_ADDR not set, skipping end-to-end suite")
	}
	s.client = &http.Client{Timeout: 30 * time.Second}
}

// Step prints a colorized header for a scenario step in logs
func (s *BaseHttpSuite) Step(t *testing.T, name string) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)
}

// Do sends the request with logging and JSON debugging. The body comes back
// fully read and the response is already closed.
func (s *BaseHttpSuite) Do(t *testing.T, request *http.Request) (*http.Response, []byte) {
	start := time.Now()
	response, err := s.client.Do(request)
	s.Require().NoError(err, "Failed to reach server at "+s.Config.ServerAddr)

	body, err := io.ReadAll(response.Body)
	s.Require().NoError(err)
	s.Require().NoError(response.Body.Close())

	logBuilder := strings.Builder{}
	fmt.Fprintf(&logBuilder, "HTTP %s %s [%d] in %v",
		request.Method, request.URL.Path, response.StatusCode, time.Since(start))

	// Log full JSON response bodies if E2E_DEBUG_JSON is enabled
	if s.Config.DebugJSON {
		fmt.Fprintln(&logBuilder, "\nRESPONSE:")
		fmt.Fprintln(&logBuilder, string(body))
	}
	t.Log(logBuilder.String())

	return response, body
}

// Post builds a JSON creation request carrying the configured shared secret.
func (s *BaseHttpSuite) Post(path string, payload string) *http.Request {
	request, err := http.NewRequest(http.MethodPost, s.Config.ServerAddr+path, bytes.NewReader([]byte(payload)))
	s.Require().NoError(err)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set(auth.DefaultSecretHeader, s.Config.Secret)
	return request
}

func (s *BaseHttpSuite) Get(path string) *http.Request {
	request, err := http.NewRequest(http.MethodGet, s.Config.ServerAddr+path, nil)
	s.Require().NoError(err)
	return request
}

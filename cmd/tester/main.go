package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"message-lab/auth"
)

// Manual smoke check against a running server: posts one message with the
// shared secret, then reads the feed back. Not part of the test suite.
func main() {
	// 1. Target server and secret come from the environment
	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = "http://localhost:8080"
	}
	secret := os.Getenv("SECRET")
	if secret == "" {
		log.Fatalf("SECRET must be set")
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}
	content := fmt.Sprintf("smoke check at %s", time.Now().UTC().Format(time.TimeOnly))

	// 2. Post one message with the credential header
	payload, _ := json.Marshal(map[string]string{"content": content})
	request, err := http.NewRequest(http.MethodPost, addr+"/messages", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set(auth.DefaultSecretHeader, secret)

	response, err := httpClient.Do(request)
	if err != nil {
		log.Fatalf("Failed to reach %s: %v", addr, err)
	}
	body, _ := io.ReadAll(response.Body)
	_ = response.Body.Close()
	if response.StatusCode != http.StatusOK {
		log.Fatalf("Creation refused [%d]: %s", response.StatusCode, body)
	}
	fmt.Printf("Created: %s\n", body)

	// 3. Read the feed back and confirm the message is served
	feedResponse, err := httpClient.Get(addr + "/messages")
	if err != nil {
		log.Fatalf("Failed to read feed: %v", err)
	}
	defer feedResponse.Body.Close()

	var feed []struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(feedResponse.Body).Decode(&feed); err != nil {
		log.Fatalf("Failed to decode feed: %v", err)
	}

	for _, m := range feed {
		if m.Content == content {
			fmt.Printf("Feed serves the new message (%d total)\n", len(feed))
			return
		}
	}
	log.Fatalf("Message not found in feed of %d entries", len(feed))
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"message-lab/infrastructure/http/client"
)

// Exit codes for the viewer application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the viewer-side environment variables.
type Config struct {
	FeedURL  string        `env:"FEED_URL,default=http://localhost:8080"`
	Topic    string        `env:"TOPIC,default=general"`
	Timeout  time.Duration `env:"FEED_TIMEOUT,default=10s"`
	Colours  bool          `env:"VIEWER_COLOURS,default=true"`
	LogLevel string        `env:"LOG_LEVEL,default=info"`
}

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Viewer error: %v\n", err)
	}
	os.Exit(code)
}

// run fetches the remote feed once and renders it as a table. Configuration
// problems and fetch problems exit with distinct codes so scripts can tell
// them apart.
func run() (int, error) {
	// 1. Load configuration from environment variables.
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()

	// 3. Fetch the feed.
	feedClient := client.NewMessageClient(
		config.FeedURL,
		&http.Client{Timeout: config.Timeout},
		log,
	)
	messages, err := feedClient.GetMessages(ctx, config.Topic)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not fetch feed from %s: %w", config.FeedURL, err)
	}

	// 4. Render.
	header := fmt.Sprintf("  ====== Feed %q from %s ======", config.Topic, config.FeedURL)
	if config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	fmt.Println(header)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Timestamp", "Content"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for i, m := range messages {
		table.Append([]string{
			strconv.Itoa(i + 1),
			m.At.Format(time.DateTime),
			m.Content,
		})
	}
	table.Render()

	log.Info("Feed fetched", "count", len(messages))
	return exitOK, nil
}

package internal

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"message-lab/domain"
	"message-lab/repositories"
)

//go:embed inspect.html
var templatesFS embed.FS

type InspectRow struct {
	Index     int
	Content   string
	Timestamp string
	Age       string
}

type StatsProvider func() map[string]any

type PageData struct {
	Count int
	Items []InspectRow
	Stats map[string]any
}

// StartDebugServer exposes the in-memory feed on its own port for manual
// inspection. It never starts unless DEBUG_PORT is set.
func StartDebugServer(log *slog.Logger, repository repositories.IMessageRepository,
	port int, endpoint string, statsProvider StatsProvider) {
	mux := http.NewServeMux()
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))

	mux.HandleFunc(endpoint, func(w http.ResponseWriter, r *http.Request) {
		data := PageData{Stats: make(map[string]any)}
		if statsProvider != nil {
			data.Stats = statsProvider()
		}

		messages, err := repository.GetMessages()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		data.Count = len(messages)
		data.Items = toRows(messages)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = tmpl.Execute(w, data)
	})

	go func() {
		// Listens on all interfaces to allow network access
		addr := fmt.Sprintf("0.0.0.0:%d", port)
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Error("Debug server stopped", "error", err)
		}
	}()
}

func toRows(messages []domain.Message) []InspectRow {
	rows := make([]InspectRow, 0, len(messages))
	for i, m := range messages {
		rows = append(rows, InspectRow{
			Index:     i + 1,
			Content:   m.Content,
			Timestamp: m.At.Format(time.TimeOnly),
			Age:       time.Since(m.At).Round(time.Second).String(),
		})
	}
	return rows
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
)

// SSEWriter writes numbered Server-Sent Events. It is safe for concurrent use.
type SSEWriter struct {
	mu  sync.Mutex
	w   http.ResponseWriter
	rc  *http.ResponseController
	seq int
}

// NewSSEWriter sets the event-stream headers and flushes them. It fails when
// the writer cannot flush.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("Access-Control-Allow-Origin", "*")

	rc := http.NewResponseController(w)
	if err := rc.Flush(); err != nil {
		if errors.Is(err, http.ErrNotSupported) {
			return nil, errors.New("streaming not supported")
		}
		return nil, err
	}
	return &SSEWriter{w: w, rc: rc}, nil
}

// WriteEvent marshals data and sends it as one event.
func (s *SSEWriter) WriteEvent(event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	if _, err := fmt.Fprintf(s.w, "id: %d\nevent: %s\ndata: %s\n\n", s.seq, event, payload); err != nil {
		return err
	}
	return s.rc.Flush()
}

func (s *SSEWriter) WriteError(message string) {
	s.WriteEvent("error", map[string]string{"error": message}) //nolint:errcheck
}

// WriteComplete sends the terminal event of a stream.
func (s *SSEWriter) WriteComplete(id, status string) {
	s.WriteEvent("complete", map[string]string{"id": id, "status": status}) //nolint:errcheck
}

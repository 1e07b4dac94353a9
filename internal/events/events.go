package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	TypePing        = "ping"
	TypeExportDone  = "export_done"
	TypeExportError = "export_failed"
	TypeConfigSaved = "config_saved"
)

// Event is the envelope every server-sent message carries.
type Event struct {
	Type      string          `json:"type"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// ExportDone is the payload of an export_done event.
type ExportDone struct {
	URL      string `json:"url,omitempty"`
	Jobs     int    `json:"jobs"`
	Filename string `json:"filename"`
}

func Encode(reqID, typ string, data any) string {
	e := Event{Type: typ, At: time.Now().UTC(), RequestID: reqID}
	if data != nil {
		b, _ := json.Marshal(data)
		e.Data = b
	}
	b, _ := json.Marshal(e)
	return string(b)
}

// Hub fans encoded events out to every connected listener. A listener that
// falls behind misses events rather than stalling the publisher.
type Hub struct {
	mu   sync.Mutex
	subs map[chan string]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan string]struct{})}
}

func (h *Hub) Subscribe() chan string {
	ch := make(chan string, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

func (h *Hub) Publish(evt string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

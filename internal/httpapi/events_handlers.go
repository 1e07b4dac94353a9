package httpapi

import (
	"fmt"
	"net/http"

	"jobexport/internal/events"
)

type EventsHandler struct {
	Hub *events.Hub
}

// ServeSSE streams export and config events until the client goes away.
func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, CodeStreamUnsupported, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	fmt.Fprintf(w, "event: message\ndata: %s\n\n", events.Encode(RequestIDFrom(r.Context()), events.TypePing, nil))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

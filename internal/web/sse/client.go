package sse

import (
	"net/http"
	"time"
)

const (
	pingPeriod     = 30 * time.Second
	sendBufferSize = 64
)

// Client is one connected spectator
type Client struct {
	name        string
	send        chan []byte
	connectedAt time.Time
}

func NewClient(name string) *Client {
	return &Client{
		name:        name,
		send:        make(chan []byte, sendBufferSize),
		connectedAt: time.Now(),
	}
}

// ServeSSE streams hub events to the request until either side goes away
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, name string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	client := NewClient(name)
	if !hub.Register(client) {
		http.Error(w, "Session feed closed", http.StatusGone)
		return
	}
	defer hub.Unregister(client)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(formatEvent("connected", string(hub.sessionID)))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-client.send:
			if !ok {
				return
			}
			if _, err := w.Write(msg); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

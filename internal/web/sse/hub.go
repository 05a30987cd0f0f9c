package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Jeet1511/EliteZero/internal/model"
)

const hubBufferSize = 256

// Hub fans the public updates of one session out to its spectators
type Hub struct {
	sessionID model.SessionID
	clients   map[*Client]struct{}
	mu        sync.RWMutex
	logger    *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a hub for a session. Call Run to start it.
func NewHub(sessionID model.SessionID, logger *slog.Logger) *Hub {
	return &Hub{
		sessionID:  sessionID,
		clients:    make(map[*Client]struct{}),
		logger:     logger.With(slog.String("session_id", string(sessionID))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, hubBufferSize),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("spectator connected", slog.String("spectator", c.name), slog.Int("spectators", n))

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("spectator disconnected",
				slog.String("spectator", c.name),
				slog.Duration("connected_for", time.Since(c.connectedAt)),
				slog.Int("spectators", n))

		case msg := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("sse messages dropped, spectator buffers full", slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register adds a client. It returns false if the hub is closed.
func (h *Hub) Register(c *Client) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// BroadcastEvent queues a named SSE event for every client
func (h *Hub) BroadcastEvent(event, data string) {
	select {
	case h.broadcast <- formatEvent(event, data):
	default:
		h.logger.Warn("sse broadcast dropped, hub buffer full", slog.String("event", event))
	}
}

func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatEvent encodes one SSE event; every data line gets its own prefix
func formatEvent(event, data string) []byte {
	var b strings.Builder
	b.WriteString("event: " + event + "\n")
	for _, line := range splitLines(data) {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

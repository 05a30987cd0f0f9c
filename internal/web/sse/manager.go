package sse

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/play"
	"github.com/Jeet1511/EliteZero/internal/web/templates/components"
)

const (
	EventRender = "render"
	EventEnd    = "game-end"
)

// HubManager owns one hub per watched session and feeds them from the play
// controller
type HubManager struct {
	hubs   map[model.SessionID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

var _ play.Observer = (*HubManager)(nil)

func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.SessionID]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the session's hub, starting one if needed
func (m *HubManager) GetOrCreateHub(id model.SessionID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hub, ok := m.hubs[id]; ok {
		return hub
	}
	hub := NewHub(id, m.logger)
	m.hubs[id] = hub
	go hub.Run()
	return hub
}

func (m *HubManager) GetHub(id model.SessionID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[id]
}

func (m *HubManager) RemoveHub(id model.SessionID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hub, ok := m.hubs[id]; ok {
		hub.Close()
		delete(m.hubs, id)
	}
}

// CleanupEmptyHubs closes hubs nobody is watching and returns how many
func (m *HubManager) CleanupEmptyHubs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, id)
			removed++
		}
	}
	if removed > 0 {
		m.logger.Info("sse empty hubs cleaned up", slog.Int("removed", removed))
	}
	return removed
}

// CloseAll ends every open stream
func (m *HubManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}

// Observe forwards public renders to the session's spectators. Sessions
// without a hub are skipped, and private renders are never forwarded.
func (m *HubManager) Observe(renders []model.RenderInstruction) {
	for _, r := range renders {
		if r.Recipient != "" {
			continue
		}
		hub := m.GetHub(r.SessionID)
		if hub == nil {
			continue
		}
		var buf bytes.Buffer
		if err := components.RenderCard(r).Render(context.Background(), &buf); err != nil {
			m.logger.Error("sse failed to render update",
				slog.String("session_id", string(r.SessionID)),
				slog.Any("error", err))
			continue
		}
		hub.BroadcastEvent(EventRender, buf.String())
		if r.Final {
			hub.BroadcastEvent(EventEnd, string(r.SessionID))
		}
	}
}

package sse

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/testutil"
)

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name     string
		event    string
		data     string
		expected string
	}{
		{"single line", "render", "hello world", "event: render\ndata: hello world\n\n"},
		{"multi line", "render", "<p>a</p>\n<p>b</p>", "event: render\ndata: <p>a</p>\ndata: <p>b</p>\n\n"},
		{"empty", "ping", "", "event: ping\ndata: \n\n"},
		{"crlf", "render", "line1\r\nline2\r\n", "event: render\ndata: line1\ndata: line2\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatEvent(tt.event, tt.data)))
		})
	}
}

func receive(t *testing.T, c *Client) string {
	t.Helper()
	select {
	case msg := <-c.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestHubBroadcastsToAllClients(t *testing.T) {
	hub := NewHub("s1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	c1, c2 := NewClient("a"), NewClient("b")
	require.True(t, hub.Register(c1))
	require.True(t, hub.Register(c2))
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("render", "data")
	assert.Equal(t, "event: render\ndata: data\n\n", receive(t, c1))
	assert.Equal(t, "event: render\ndata: data\n\n", receive(t, c2))

	hub.Unregister(c1)
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
}

func TestClosedHubRejectsClients(t *testing.T) {
	hub := NewHub("s1", testutil.NopLogger())
	go hub.Run()
	hub.Close()
	hub.Close()
	assert.False(t, hub.Register(NewClient("late")))
}

func TestManagerObserveForwardsPublicRenders(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())
	hub := m.GetOrCreateHub("s1")
	defer m.RemoveHub("s1")
	assert.Same(t, hub, m.GetOrCreateHub("s1"))

	c := NewClient("spectator")
	require.True(t, hub.Register(c))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	m.Observe([]model.RenderInstruction{
		{SessionID: "s1", Recipient: "u1", Text: "secret"},
		{SessionID: "other", Text: "unwatched"},
		{SessionID: "s1", Text: "Guess <higher>", Final: true},
	})

	msg := receive(t, c)
	assert.True(t, strings.HasPrefix(msg, "event: render\n"))
	assert.Contains(t, msg, "Guess &lt;higher&gt;")
	assert.NotContains(t, msg, "secret")
	assert.Equal(t, "event: game-end\ndata: s1\n\n", receive(t, c))
}

func TestManagerCleanupEmptyHubs(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())
	m.GetOrCreateHub("empty")
	active := m.GetOrCreateHub("active")
	defer m.RemoveHub("active")
	require.True(t, active.Register(NewClient("x")))
	require.Eventually(t, func() bool { return active.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, 1, m.CleanupEmptyHubs())
	assert.Nil(t, m.GetHub("empty"))
	assert.NotNil(t, m.GetHub("active"))

	m.RemoveHub("missing")
}

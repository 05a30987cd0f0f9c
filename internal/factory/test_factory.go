package factory

import (
	"time"

	"github.com/Jeet1511/EliteZero/internal/dependencies/mocks"
	"github.com/Jeet1511/EliteZero/internal/events"
	"github.com/Jeet1511/EliteZero/internal/services/chatbot"
	"github.com/Jeet1511/EliteZero/internal/services/session"
	"github.com/Jeet1511/EliteZero/internal/storage/memory"
	"github.com/Jeet1511/EliteZero/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App on in-memory storage with mocked dependencies.
// responder may be nil to leave AI mode unavailable.
func NewTestApp(responder chatbot.Responder) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, store, events.NopPublisher{}, responder, mockClock, mockRandom,
		session.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}

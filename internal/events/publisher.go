// Package events publishes game lifecycle events for analytics consumers.
package events

import (
	"context"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// DefaultTopic is the topic game events are written to
const DefaultTopic = "elitezero-game-events"

// Publisher sends game events to an analytics sink
type Publisher interface {
	Publish(ctx context.Context, event model.Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

var _ Publisher = NopPublisher{}

func (NopPublisher) Publish(context.Context, model.Event) error { return nil }

func (NopPublisher) Close() error { return nil }

package play

import (
	"context"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// Notifier delivers renders produced outside a player request, such as
// question deadlines, computer moves and timeouts
type Notifier interface {
	Notify(ctx context.Context, renders []model.RenderInstruction)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, renders []model.RenderInstruction)

func (f NotifierFunc) Notify(ctx context.Context, renders []model.RenderInstruction) {
	f(ctx, renders)
}

// Observer sees every render of every session, whether it was returned to
// a caller or pushed through the Notifier. Spectator feeds use it.
type Observer interface {
	Observe(renders []model.RenderInstruction)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, []model.RenderInstruction) {}

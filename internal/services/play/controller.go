// Package play runs game sessions: it binds the session store, the game
// machines, timers and the stats engine together.
package play

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/Jeet1511/EliteZero/internal/dependencies/clock"
	"github.com/Jeet1511/EliteZero/internal/dependencies/random"
	"github.com/Jeet1511/EliteZero/internal/events"
	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/games"
	"github.com/Jeet1511/EliteZero/internal/services/opponent"
	"github.com/Jeet1511/EliteZero/internal/services/session"
	"github.com/Jeet1511/EliteZero/internal/services/stats"
	"github.com/Jeet1511/EliteZero/internal/storage"
)

// ChallengeTimeout is how long a multiplayer invitation stays open
const ChallengeTimeout = time.Minute

// StartRequest describes a game to start
type StartRequest struct {
	GameType   model.GameType
	HostID     model.PlayerID
	OpponentID model.PlayerID
	Mode       model.Mode
	Difficulty model.Difficulty
	ChannelID  string
}

// Controller manages running sessions
type Controller struct {
	sessions  session.StoreInterface
	registry  *games.Registry
	engine    *opponent.Engine
	stats     stats.EngineInterface
	history   storage.HistoryStore
	publisher events.Publisher
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger

	notifier  Notifier
	observers []Observer

	mu   sync.Mutex
	runs map[model.SessionID]*run
}

// ControllerInterface defines the play operations used by the transports
type ControllerInterface interface {
	StartGame(ctx context.Context, req StartRequest) (*model.Session, []model.RenderInstruction, error)
	JoinGame(ctx context.Context, id model.SessionID, userID model.PlayerID) ([]model.RenderInstruction, error)
	DeclineGame(ctx context.Context, id model.SessionID, userID model.PlayerID) ([]model.RenderInstruction, error)
	HandleAction(ctx context.Context, action model.PlayerAction) ([]model.RenderInstruction, error)
	SubmitText(ctx context.Context, userID model.PlayerID, channelID, text string) ([]model.RenderInstruction, error)
	Quit(ctx context.Context, id model.SessionID, userID model.PlayerID) ([]model.RenderInstruction, error)
	ForceEnd(ctx context.Context, id model.SessionID) error
}

// Ensure Controller implements the interface
var _ ControllerInterface = (*Controller)(nil)

// NewController creates a new play Controller and hooks it into the
// session sweep
func NewController(
	sessions session.StoreInterface,
	registry *games.Registry,
	engine *opponent.Engine,
	statsEngine stats.EngineInterface,
	history storage.HistoryStore,
	publisher events.Publisher,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	c := &Controller{
		sessions:  sessions,
		registry:  registry,
		engine:    engine,
		stats:     statsEngine,
		history:   history,
		publisher: publisher,
		clock:     clock,
		random:    random,
		logger:    logger.With(slog.String("component", "play-controller")),
		notifier:  nopNotifier{},
		runs:      make(map[model.SessionID]*run),
	}
	sessions.OnExpire(c.expire)
	return c
}

// SetNotifier sets where timer-driven renders are delivered
func (c *Controller) SetNotifier(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifier = n
}

// AddObserver registers a spectator of all renders
func (c *Controller) AddObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// ActiveRuns is the number of sessions currently running or waiting
func (c *Controller) ActiveRuns() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.runs)
}

// StartGame creates a session. Solo and computer games start right away;
// multiplayer games wait for the opponent to accept.
func (c *Controller) StartGame(ctx context.Context, req StartRequest) (*model.Session, []model.RenderInstruction, error) {
	if req.Mode == "" {
		req.Mode = model.ModeSolo
	}
	if err := c.registry.Validate(req.GameType, req.Mode); err != nil {
		return nil, nil, err
	}
	if req.Mode == model.ModeMultiplayer {
		if req.OpponentID == "" || req.OpponentID == req.HostID || req.OpponentID.IsComputer() {
			return nil, nil, fmt.Errorf("%w: multiplayer needs another player", model.ErrMalformedAction)
		}
		if _, err := c.sessions.UserSession(ctx, req.OpponentID); err == nil {
			return nil, nil, model.ErrAlreadyInGame
		}
	}

	sess, err := c.sessions.CreateSession(ctx, req.GameType, req.HostID, model.SessionOptions{
		Mode:       req.Mode,
		Difficulty: req.Difficulty,
		ChannelID:  req.ChannelID,
	})
	if err != nil {
		return nil, nil, err
	}

	r := newRun(sess)
	r.mu.Lock()
	defer r.mu.Unlock()

	c.mu.Lock()
	c.runs[sess.ID] = r
	c.mu.Unlock()

	var renders []model.RenderInstruction
	if req.Mode == model.ModeMultiplayer {
		r.challenged = req.OpponentID
		renders = []model.RenderInstruction{c.challengeRender(sess, req.OpponentID)}
		c.armDeadline(r, ChallengeTimeout)
	} else {
		renders, err = c.begin(ctx, r)
		if err != nil {
			return nil, nil, err
		}
	}

	c.observe(renders)
	return r.session.Clone(), renders, nil
}

func (c *Controller) challengeRender(sess *model.Session, opponentID model.PlayerID) model.RenderInstruction {
	info := sess.GameType.Info()
	return model.RenderInstruction{
		SessionID: sess.ID,
		Title:     fmt.Sprintf("%s %s challenge", info.Icon, info.Name),
		Text:      fmt.Sprintf("%s, %s challenges you to %s!", opponentID.Mention(), sess.HostID.Mention(), info.Name),
		Controls: [][]model.Control{{
			{Kind: model.ActionAccept, Value: string(opponentID), Label: "Accept", Style: model.StyleSuccess},
			{Kind: model.ActionDecline, Value: string(opponentID), Label: "Decline", Style: model.StyleDanger},
		}},
	}
}

// begin starts the session and its machine. Caller holds r.mu.
func (c *Controller) begin(ctx context.Context, r *run) ([]model.RenderInstruction, error) {
	sess, err := c.sessions.StartSession(ctx, r.session.ID)
	if err != nil {
		c.end(ctx, r, model.EndAbandoned, nil)
		return nil, err
	}
	r.session = sess

	machine, err := c.registry.New(games.Setup{
		Session: sess.Clone(),
		Engine:  c.engine,
		Random:  c.random,
		Clock:   c.clock,
	})
	if err != nil {
		c.end(ctx, r, model.EndAbandoned, nil)
		return nil, err
	}
	r.machine = machine

	step, err := c.guard(r, machine.Start)
	if err != nil {
		c.end(ctx, r, model.EndAbandoned, nil)
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("session_id", string(sess.ID)),
		slog.String("game_type", string(sess.GameType)),
		slog.String("mode", string(sess.Mode)),
		slog.String("difficulty", string(sess.Difficulty)),
	)
	c.publish(ctx, model.Event{
		Type:      model.EventGameStarted,
		Timestamp: c.clock.Now(),
		SessionID: sess.ID,
		GameType:  sess.GameType,
		PlayerID:  sess.HostID,
		Payload: model.GameStartedPayload{
			Players:    sess.Players,
			Mode:       sess.Mode,
			Difficulty: sess.Difficulty,
		},
	})

	c.armDeadline(r, machine.Timeout())
	return c.apply(ctx, r, step), nil
}

// JoinGame accepts a challenge and starts the game
func (c *Controller) JoinGame(ctx context.Context, id model.SessionID, userID model.PlayerID) ([]model.RenderInstruction, error) {
	r, err := c.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return nil, model.ErrGameNotActive
	}
	if r.machine != nil {
		return nil, model.ErrAlreadyStarted
	}
	if userID == r.session.HostID {
		return nil, model.ErrDuplicatePlayer
	}
	if userID != r.challenged {
		return nil, model.ErrNotParticipant
	}

	sess, err := c.sessions.JoinSession(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	r.session = sess

	renders, err := c.begin(ctx, r)
	if err != nil {
		return nil, err
	}
	c.observe(renders)
	return renders, nil
}

// DeclineGame turns down a challenge. The host may also withdraw it.
func (c *Controller) DeclineGame(ctx context.Context, id model.SessionID, userID model.PlayerID) ([]model.RenderInstruction, error) {
	r, err := c.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return nil, model.ErrGameNotActive
	}
	if r.machine != nil {
		return nil, model.ErrAlreadyStarted
	}
	if userID != r.challenged && userID != r.session.HostID {
		return nil, model.ErrNotParticipant
	}

	c.end(ctx, r, model.EndAbandoned, nil)
	renders := []model.RenderInstruction{c.closing(r, fmt.Sprintf("%s declined the challenge.", userID.Mention()))}
	c.observe(renders)
	return renders, nil
}

// Quit ends the caller's game without recording stats
func (c *Controller) Quit(ctx context.Context, id model.SessionID, userID model.PlayerID) ([]model.RenderInstruction, error) {
	r, err := c.lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return nil, model.ErrGameNotActive
	}
	if !r.session.HasPlayer(userID) {
		return nil, model.ErrNotParticipant
	}

	c.end(ctx, r, model.EndAbandoned, nil)
	renders := []model.RenderInstruction{c.closing(r, fmt.Sprintf("🏳️ %s left the game.", userID.Mention()))}
	c.observe(renders)
	return renders, nil
}

// ForceEnd abandons a session on behalf of an operator
func (c *Controller) ForceEnd(ctx context.Context, id model.SessionID) error {
	r, err := c.lookup(ctx, id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	if r.done {
		r.mu.Unlock()
		return model.ErrGameNotActive
	}
	c.end(ctx, r, model.EndAbandoned, nil)
	renders := []model.RenderInstruction{c.closing(r, "🛑 This game was ended by an administrator.")}
	r.mu.Unlock()

	c.push(ctx, renders)
	return nil
}

// lookup finds the live run, telling finished sessions apart from unknown ones
func (c *Controller) lookup(ctx context.Context, id model.SessionID) (*run, error) {
	c.mu.Lock()
	r, ok := c.runs[id]
	c.mu.Unlock()
	if ok {
		return r, nil
	}
	if _, err := c.sessions.GetSession(ctx, id); err == nil {
		return nil, model.ErrGameNotActive
	}
	return nil, model.ErrSessionNotFound
}

// closing is the last render of a run that ended without a result
func (c *Controller) closing(r *run, text string) model.RenderInstruction {
	info := r.session.GameType.Info()
	return model.RenderInstruction{
		SessionID: r.session.ID,
		Title:     fmt.Sprintf("%s %s", info.Icon, info.Name),
		Text:      text,
		Final:     true,
	}
}

// guard runs a machine call, turning a panic into ErrInternal
func (c *Controller) guard(r *run, call func() (games.Step, error)) (step games.Step, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Error("panic in game machine",
				slog.String("session_id", string(r.session.ID)),
				slog.String("game_type", string(r.session.GameType)),
				slog.Any("panic", rec),
				slog.String("stack", string(debug.Stack())),
			)
			step, err = games.Step{}, model.ErrInternal
		}
	}()
	return call()
}

func (c *Controller) snapshotObservers() []Observer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.observers
}

// observe hands renders to the spectators
func (c *Controller) observe(renders []model.RenderInstruction) {
	if len(renders) == 0 {
		return
	}
	for _, o := range c.snapshotObservers() {
		o.Observe(renders)
	}
}

// push delivers renders nobody asked for. Never call it holding a run lock.
func (c *Controller) push(ctx context.Context, renders []model.RenderInstruction) {
	if len(renders) == 0 {
		return
	}
	c.mu.Lock()
	n := c.notifier
	c.mu.Unlock()
	n.Notify(ctx, renders)
	c.observe(renders)
}

func (c *Controller) publish(ctx context.Context, event model.Event) {
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.Warn("failed to publish event",
			slog.String("type", string(event.Type)),
			slog.String("session_id", string(event.SessionID)),
			slog.String("error", err.Error()),
		)
	}
}

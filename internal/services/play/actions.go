package play

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Jeet1511/EliteZero/internal/model"
	"github.com/Jeet1511/EliteZero/internal/services/games"
	"github.com/Jeet1511/EliteZero/internal/services/stats"
)

// HandleAction routes one player input to its session
func (c *Controller) HandleAction(ctx context.Context, a model.PlayerAction) ([]model.RenderInstruction, error) {
	switch a.Kind {
	case model.ActionAccept:
		return c.JoinGame(ctx, a.SessionID, a.ActorID)
	case model.ActionDecline:
		return c.DeclineGame(ctx, a.SessionID, a.ActorID)
	case model.ActionQuit:
		return c.Quit(ctx, a.SessionID, a.ActorID)
	}

	r, err := c.lookup(ctx, a.SessionID)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.done {
		return nil, model.ErrGameNotActive
	}
	if !r.session.HasPlayer(a.ActorID) {
		return nil, model.ErrNotParticipant
	}
	if r.machine == nil {
		return nil, fmt.Errorf("%w: waiting for the opponent to accept", model.ErrUnexpectedAction)
	}
	if !r.expects(a.ActorID) {
		return nil, model.ErrNotPlayerTurn
	}

	step, err := c.guard(r, func() (games.Step, error) { return r.machine.Handle(a) })
	if err != nil {
		c.logger.Debug("action rejected",
			slog.String("session_id", string(a.SessionID)),
			slog.String("player_id", string(a.ActorID)),
			slog.String("kind", string(a.Kind)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.armDeadline(r, r.machine.Timeout())
	renders := c.apply(ctx, r, step)
	c.observe(renders)
	return renders, nil
}

// SubmitText sends free text typed in channelID to the user's running game.
// Text from any other channel is not game input.
func (c *Controller) SubmitText(ctx context.Context, userID model.PlayerID, channelID, text string) ([]model.RenderInstruction, error) {
	sess, err := c.sessions.UserSession(ctx, userID)
	if err != nil {
		return nil, err
	}
	if channelID != sess.ChannelID {
		return nil, fmt.Errorf("%w: message outside the game channel", model.ErrUnexpectedAction)
	}
	return c.HandleAction(ctx, model.PlayerAction{
		SessionID: sess.ID,
		ActorID:   userID,
		Kind:      model.ActionText,
		Value:     text,
	})
}

// apply carries out a machine step: timers first, then the result.
// Caller holds r.mu.
func (c *Controller) apply(ctx context.Context, r *run, step games.Step) []model.RenderInstruction {
	for _, kind := range step.Cancel {
		if t, ok := r.ticks[kind]; ok {
			t.Stop()
			delete(r.ticks, kind)
		}
	}
	for _, tick := range step.Schedule {
		if t, ok := r.ticks[tick.Kind]; ok {
			t.Stop()
		}
		kind := tick.Kind
		r.ticks[kind] = c.clock.AfterFunc(tick.After, func() { c.fireTick(r, kind) })
	}

	renders := step.Renders
	if step.Result != nil {
		renders = append(renders, c.finish(ctx, r, step.Result)...)
	}
	return renders
}

func (c *Controller) fireTick(r *run, kind string) {
	ctx := context.Background()

	r.mu.Lock()
	if r.done || r.machine == nil {
		r.mu.Unlock()
		return
	}
	delete(r.ticks, kind)

	step, err := c.guard(r, func() (games.Step, error) { return r.machine.Tick(kind) })
	if err != nil {
		r.mu.Unlock()
		c.logger.Error("tick failed",
			slog.String("session_id", string(r.session.ID)),
			slog.String("tick", kind),
			slog.String("error", err.Error()),
		)
		return
	}
	renders := c.apply(ctx, r, step)
	r.mu.Unlock()

	c.push(ctx, renders)
}

// armDeadline (re)starts the inactivity timer. Caller holds r.mu.
func (c *Controller) armDeadline(r *run, after time.Duration) {
	if r.deadline != nil {
		r.deadline.Stop()
	}
	r.deadlineGen++
	gen := r.deadlineGen
	r.deadline = c.clock.AfterFunc(after, func() { c.timeout(r, gen) })
}

func (c *Controller) timeout(r *run, gen int) {
	ctx := context.Background()

	r.mu.Lock()
	if r.done || gen != r.deadlineGen {
		r.mu.Unlock()
		return
	}
	text := "⏰ Game ended due to inactivity."
	if r.machine == nil {
		text = fmt.Sprintf("⏰ %s did not answer the challenge in time.", r.challenged.Mention())
	}
	c.end(ctx, r, model.EndTimeout, nil)
	c.publish(ctx, model.Event{
		Type:      model.EventGameTimedOut,
		Timestamp: c.clock.Now(),
		SessionID: r.session.ID,
		GameType:  r.session.GameType,
	})
	renders := []model.RenderInstruction{c.closing(r, text)}
	r.mu.Unlock()

	c.logger.Info("game timed out", slog.String("session_id", string(r.session.ID)))
	c.push(ctx, renders)
}

// expire is the session sweep hook; the store has already ended the session
func (c *Controller) expire(sess *model.Session) {
	c.mu.Lock()
	r, ok := c.runs[sess.ID]
	delete(c.runs, sess.ID)
	c.mu.Unlock()
	if !ok {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.done = true
	r.stopTimers()
	c.logger.Info("run expired", slog.String("session_id", string(sess.ID)))
}

// end stops the run without a result. Caller holds r.mu.
func (c *Controller) end(ctx context.Context, r *run, reason model.EndReason, result *model.GameResult) *model.Session {
	r.done = true
	r.stopTimers()

	c.mu.Lock()
	delete(c.runs, r.session.ID)
	c.mu.Unlock()

	sess := c.sessions.EndSession(ctx, r.session.ID, reason, result)
	if sess != nil {
		r.session = sess
	}
	if reason == model.EndAbandoned {
		c.publish(ctx, model.Event{
			Type:      model.EventGameAbandoned,
			Timestamp: c.clock.Now(),
			SessionID: r.session.ID,
			GameType:  r.session.GameType,
		})
	}
	return r.session
}

// finish closes a completed game: session, stats, history and events.
// Caller holds r.mu. It runs once per run because end marks it done.
func (c *Controller) finish(ctx context.Context, r *run, result *model.GameResult) []model.RenderInstruction {
	if r.done {
		return nil
	}
	sess := c.end(ctx, r, model.EndCompleted, result)

	var renders []model.RenderInstruction
	for _, p := range sess.Players {
		outcome, ok := result.Outcomes[p]
		if !ok {
			continue
		}
		rec, err := c.stats.RecordOutcome(ctx, p, sess.GameType, outcome.Outcome, outcome.Aux)
		if err != nil {
			c.logger.Error("failed to record outcome",
				slog.String("session_id", string(sess.ID)),
				slog.String("player_id", string(p)),
				slog.String("error", err.Error()),
			)
			continue
		}
		renders = append(renders, c.rewardRender(sess, p, rec))
		for _, a := range rec.NewAchievements {
			c.publish(ctx, model.Event{
				Type:      model.EventAchievementUnlocked,
				Timestamp: c.clock.Now(),
				SessionID: sess.ID,
				GameType:  sess.GameType,
				PlayerID:  p,
				Payload:   model.AchievementPayload{AchievementID: a.ID, Points: a.Points},
			})
		}
	}

	record := matchRecord(sess, result)
	if c.history != nil {
		if err := c.history.ArchiveMatch(ctx, record); err != nil {
			c.logger.Error("failed to archive match",
				slog.String("session_id", string(sess.ID)),
				slog.String("error", err.Error()),
			)
		}
	}

	c.publish(ctx, model.Event{
		Type:      model.EventGameEnded,
		Timestamp: c.clock.Now(),
		SessionID: sess.ID,
		GameType:  sess.GameType,
		PlayerID:  result.Winner,
		Payload: model.GameEndedPayload{
			Winner:          result.Winner,
			Outcomes:        result.Outcomes,
			DurationSeconds: int(record.EndedAt.Sub(record.StartedAt).Seconds()),
			Reason:          model.EndCompleted,
		},
	})

	c.logger.Info("game finished",
		slog.String("session_id", string(sess.ID)),
		slog.String("game_type", string(sess.GameType)),
		slog.String("winner", string(result.Winner)),
	)
	return renders
}

func (c *Controller) rewardRender(sess *model.Session, p model.PlayerID, rec *stats.RecordResult) model.RenderInstruction {
	text := fmt.Sprintf("💰 %s earned **%d** points.", p.Mention(), rec.Points)
	for _, a := range rec.NewAchievements {
		text += fmt.Sprintf("\n%s Achievement unlocked: **%s** (+%d)", a.Icon, a.Name, a.Points)
	}
	return model.RenderInstruction{
		SessionID: sess.ID,
		Title:     "Rewards",
		Text:      text,
	}
}

func matchRecord(sess *model.Session, result *model.GameResult) *model.MatchRecord {
	rec := &model.MatchRecord{
		SessionID:  sess.ID,
		GameType:   sess.GameType,
		Mode:       sess.Mode,
		Difficulty: sess.Difficulty,
		Players:    sess.Players,
		Winner:     result.Winner,
		Outcomes:   result.Outcomes,
		EndedAt:    result.EndedAt,
		EndReason:  model.EndCompleted,
	}
	if sess.StartedAt != nil {
		rec.StartedAt = *sess.StartedAt
	}
	if sess.EndedAt != nil && rec.EndedAt.IsZero() {
		rec.EndedAt = *sess.EndedAt
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = rec.EndedAt
	}
	return rec
}

package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// Handler receives decoded events
type Handler func(model.Event)

// Decode parses one message value. Payloads come back as generic JSON.
func Decode(value []byte) (model.Event, error) {
	var event model.Event
	if err := json.Unmarshal(value, &event); err != nil {
		return model.Event{}, fmt.Errorf("decode event: %w", err)
	}
	return event, nil
}

// groupHandler adapts a Handler to sarama's consumer group interface
type groupHandler struct {
	handle Handler
	logger *slog.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		event, err := Decode(msg.Value)
		if err != nil {
			h.logger.Warn("skipping message", slog.String("error", err.Error()), slog.Int64("offset", msg.Offset))
		} else {
			h.handle(event)
		}
		session.MarkMessage(msg, "")
	}
	return nil
}

// Tail consumes events from the topic until ctx is cancelled
func Tail(ctx context.Context, cfg Config, group string, handle Handler, logger *slog.Logger) error {
	config := cfg.sarama()
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	consumer, err := sarama.NewConsumerGroup(cfg.Brokers, group, config)
	if err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}
	defer consumer.Close()

	h := &groupHandler{handle: handle, logger: logger.With(slog.String("component", "kafka-consumer"))}
	for {
		if err := consumer.Consume(ctx, []string{cfg.Topic}, h); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return nil
			}
			return fmt.Errorf("consume: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

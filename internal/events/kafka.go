package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// Config holds Kafka settings
type Config struct {
	Brokers  []string
	Topic    string
	ClientID string
}

// DefaultConfig returns settings for a local broker
func DefaultConfig() Config {
	return Config{
		Brokers:  []string{"localhost:9092"},
		Topic:    DefaultTopic,
		ClientID: "elitezero",
	}
}

func (c Config) sarama() *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = c.ClientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	return config
}

// KafkaPublisher writes events as JSON keyed by session id, so one
// session's events stay ordered on a partition
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher connects a synchronous producer to the brokers
func NewKafkaPublisher(cfg Config, logger *slog.Logger) (*KafkaPublisher, error) {
	producer, err := sarama.NewSyncProducer(cfg.Brokers, cfg.sarama())
	if err != nil {
		return nil, fmt.Errorf("connect to kafka: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, cfg.Topic, logger), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer (useful for testing)
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With(slog.String("component", "kafka-publisher")),
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event model.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.SessionID),
		Value: sarama.ByteEncoder(data),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send event: %w", err)
	}

	p.logger.Debug("event published",
		slog.String("type", string(event.Type)),
		slog.String("session_id", string(event.SessionID)),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

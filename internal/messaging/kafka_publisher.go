package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
)

// KafkaPublisher publishes ledger changes to Kafka
type KafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// KafkaPublisherConfig holds Kafka publisher configuration
type KafkaPublisherConfig struct {
	Brokers      []string
	Topic        string // e.g., "bet_events"
	WriteTimeout time.Duration
}

// NewKafkaPublisher creates a new Kafka publisher
func NewKafkaPublisher(config KafkaPublisherConfig, logger zerolog.Logger) *KafkaPublisher {
	timeout := config.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(config.Brokers...),
		Topic:                  config.Topic,
		Balancer:               &kafka.Hash{}, // events of one fixture stay ordered
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           timeout,
		AllowAutoTopicCreation: true,
	}

	return &KafkaPublisher{
		writer: writer,
		logger: logger.With().Str("component", "kafka_publisher").Logger(),
	}
}

// PublishBetEvent writes one bet event keyed by fixture ID
func (p *KafkaPublisher) PublishBetEvent(ctx context.Context, event models.KafkaBetEvent) error {
	msg, err := betEventMessage(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write bet event: %w", err)
	}

	p.logger.Debug().
		Str("event_id", event.ID.String()).
		Str("type", string(event.Type)).
		Str("fixture_id", event.Record.FixtureID).
		Msg("published bet event")

	return nil
}

func betEventMessage(event models.KafkaBetEvent) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal bet event: %w", err)
	}

	return kafka.Message{
		Key:   []byte(event.Record.FixtureID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}, nil
}

// Close flushes pending writes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

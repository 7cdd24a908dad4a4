package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/cypherlabdev/fixture-analyst-service/internal/ledger"
	"github.com/cypherlabdev/fixture-analyst-service/internal/models"
	"github.com/cypherlabdev/fixture-analyst-service/internal/service"
)

// KafkaConsumer consumes bet settlements from Kafka and applies them to the ledger
type KafkaConsumer struct {
	reader  *kafka.Reader
	settler service.BetSettler
	logger  zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "bet_settlements"
	GroupID string   // e.g., "fixture-analyst"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	settler service.BetSettler,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1,    // settlements are small and sparse
		MaxBytes:       10e6, // 10MB
		MaxWait:        time.Second,
		CommitInterval: time.Second,
	})

	return &KafkaConsumer{
		reader:  reader,
		settler: settler,
		logger:  logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return nil

		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage settles every bet named in a single Kafka message.
// Unknown fixtures and invalid outcomes are skipped; any other failure
// leaves the message uncommitted.
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var kafkaMsg models.KafkaSettlementMessage
	if err := json.Unmarshal(msg.Value, &kafkaMsg); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	c.logger.Debug().
		Int("settlement_count", len(kafkaMsg.Settlements)).
		Str("batch_id", kafkaMsg.BatchID).
		Msg("processing settlement batch")

	settled, skipped := 0, 0
	for _, s := range kafkaMsg.Settlements {
		if s.FixtureID == "" || !s.Outcome.Valid() {
			c.logger.Warn().
				Str("fixture_id", s.FixtureID).
				Str("outcome", string(s.Outcome)).
				Str("batch_id", kafkaMsg.BatchID).
				Msg("skipping malformed settlement")
			skipped++
			continue
		}

		if _, err := c.settler.SettleBet(ctx, s.FixtureID, s.Outcome); err != nil {
			if errors.Is(err, ledger.ErrNotFound) {
				c.logger.Debug().
					Str("fixture_id", s.FixtureID).
					Msg("no bet recorded for settled fixture")
				skipped++
				continue
			}
			return fmt.Errorf("failed to settle fixture %s: %w", s.FixtureID, err)
		}
		settled++
	}

	c.logger.Info().
		Int("settled", settled).
		Int("skipped", skipped).
		Str("batch_id", kafkaMsg.BatchID).
		Msg("processed settlement batch")

	return nil
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/trogers1052/stock-journal/internal/models"
	"go.uber.org/zap"
)

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Refresher reloads a user's cached journal
type Refresher interface {
	Refresh(ctx context.Context, userID string) error
}

// Consumer reloads local sessions when another instance changes a user's journal
type Consumer struct {
	reader    messageReader
	refresher Refresher
	source    string
	logger    *zap.Logger
}

// NewConsumer creates a consumer that ignores events published by source.
// Each instance must use its own groupID so every instance sees every event.
func NewConsumer(brokers []string, topic, groupID, source string, refresher Refresher, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
	})

	return newConsumer(reader, refresher, source, logger)
}

func newConsumer(reader messageReader, refresher Refresher, source string, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{
		reader:    reader,
		refresher: refresher,
		source:    source,
		logger:    logger,
	}
}

// Start consumes until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info("starting journal event consumer")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("journal event consumer shutting down")
			return c.reader.Close()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					c.logger.Info("journal event consumer shutting down")
					return c.reader.Close()
				}
				c.logger.Warn("failed to read message", zap.Error(err))
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Warn("failed to process message",
					zap.Int("partition", msg.Partition),
					zap.Int64("offset", msg.Offset),
					zap.Error(err),
				)
			}
		}
	}
}

// processMessage handles a single Kafka message
func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var event models.JournalEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal journal event: %w", err)
	}

	if event.Source == c.source || event.UserID == "" {
		return nil
	}

	if err := c.refresher.Refresh(ctx, event.UserID); err != nil {
		return fmt.Errorf("failed to refresh journal for %s: %w", event.UserID, err)
	}

	c.logger.Debug("refreshed journal",
		zap.String("user_id", event.UserID),
		zap.String("event_type", event.EventType),
		zap.String("source", event.Source),
	)
	return nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}

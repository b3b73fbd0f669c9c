package event

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-portfolio/internal/config"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

const ProfileRevalidatorGroup = "profile-revalidator"

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ProfileEventHandler processes one decoded event. A returned error leaves the
// message uncommitted.
type ProfileEventHandler func(ctx context.Context, payload ProfileEventPayload) error

type ProfileEventConsumer struct {
	reader  messageReader
	handler ProfileEventHandler
	logger  logger.Logger
}

func NewProfileEventConsumer(cfg config.Config, handler ProfileEventHandler, log logger.Logger) *ProfileEventConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    TopicProfileEvents,
		GroupID:  ProfileRevalidatorGroup,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &ProfileEventConsumer{reader: reader, handler: handler, logger: log}
}

// Run consumes until ctx is cancelled.
func (c *ProfileEventConsumer) Run(ctx context.Context) error {
	c.logger.Info("Worker listening", zap.String("topic", TopicProfileEvents), zap.String("group", ProfileRevalidatorGroup))

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.logger.Error("Failed to read message from Kafka", err)
			continue
		}

		c.handle(ctx, msg)
	}
}

func (c *ProfileEventConsumer) handle(ctx context.Context, msg kafka.Message) {
	var payload ProfileEventPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		c.logger.Warn("Failed to unmarshal event, skipping", zap.Int64("offset", msg.Offset), zap.Error(err))
		c.commit(ctx, msg)
		return
	}

	if err := c.handler(ctx, payload); err != nil {
		c.logger.Error("Failed to process profile event", err, zap.String("path", payload.Path))
		return
	}

	c.commit(ctx, msg)
}

func (c *ProfileEventConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message", err, zap.Int64("offset", msg.Offset))
	}
}

func (c *ProfileEventConsumer) Close() error {
	return c.reader.Close()
}

package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/cv-portfolio/internal/application/service"
	"github.com/khoahotran/cv-portfolio/internal/config"
	"github.com/khoahotran/cv-portfolio/pkg/logger"
)

const (
	TopicProfileEvents = "profile.events"

	EventTypeRevalidate = "profile.revalidate"
)

type ProfileEventPayload struct {
	EventType  string    `json:"event_type"`
	Path       string    `json:"path"`
	OccurredAt time.Time `json:"occurred_at"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducerClient publishes revalidation requests for the worker.
type KafkaProducerClient struct {
	ProfileEventsWriter messageWriter
	logger              logger.Logger
	now                 func() time.Time
}

var _ service.CacheInvalidator = (*KafkaProducerClient)(nil)

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	profileWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicProfileEvents,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))

	return &KafkaProducerClient{
		ProfileEventsWriter: profileWriter,
		logger:              log,
		now:                 func() time.Time { return time.Now().UTC() },
	}, nil
}

// Revalidate publishes an event asking the worker to rebuild path.
func (c *KafkaProducerClient) Revalidate(ctx context.Context, path string) error {
	payload := ProfileEventPayload{
		EventType:  EventTypeRevalidate,
		Path:       path,
		OccurredAt: c.now(),
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal profile event: %w", err)
	}

	err = c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(path),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish profile event: %w", err)
	}

	c.logger.Debug("Published profile event", zap.String("path", path))
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		if err := c.ProfileEventsWriter.Close(); err != nil {
			c.logger.Warn("Failed to close Kafka writer", zap.Error(err))
		}
	}
	c.logger.Info("Closed Kafka Producers")
}

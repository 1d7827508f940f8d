package events

import (
	"context"
	"encoding/json"
	"fmt"

	"session-security/internal/model"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
)

// WatermillPublisher публикует события сессий в один topic
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

func NewWatermillPublisher(publisher message.Publisher, topic string) *WatermillPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     topic,
	}
}

// NewRedisStreamPublisher : события пишутся в Redis Streams тем же клиентом, что и кэш
func NewRedisStreamPublisher(client redis.UniversalClient, topic string) (*WatermillPublisher, error) {
	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{Client: client},
		watermill.NewStdLogger(false, false),
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания redis stream publisher: %w", err)
	}

	return NewWatermillPublisher(publisher, topic), nil
}

func (p *WatermillPublisher) Publish(ctx context.Context, event *model.SessionEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", string(event.Type))

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

// NopPublisher используется, когда события выключены
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *model.SessionEvent) error { return nil }
func (NopPublisher) Close() error { return nil }

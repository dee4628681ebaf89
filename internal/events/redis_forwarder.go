package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Publisher is the subset of the go-redis client used for fan-out.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisForwarder republishes workflow events on a Redis Pub/Sub channel.
type RedisForwarder struct {
	client  Publisher
	channel string
	logger  *zap.Logger
}

// NewRedisForwarder constructs a forwarder.
func NewRedisForwarder(client Publisher, channel string, logger *zap.Logger) *RedisForwarder {
	return &RedisForwarder{client: client, channel: channel, logger: logger}
}

// Register subscribes the forwarder to every workflow event type.
func (f *RedisForwarder) Register(dispatcher Dispatcher) {
	for _, eventType := range AllEventTypes {
		dispatcher.Subscribe(eventType, f.Handle)
	}
}

// Handle encodes the event as JSON and publishes it.
func (f *RedisForwarder) Handle(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	if err := f.client.Publish(ctx, f.channel, body).Err(); err != nil {
		f.logger.Warn("redis publish failed",
			zap.String("channel", f.channel),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}
	return nil
}

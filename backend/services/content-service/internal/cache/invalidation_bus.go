package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// InvalidationChannel is the redis pub/sub channel announcing style writes to every instance.
const InvalidationChannel = "content:styles:invalidated"

// Invalidation is published after a style write.
type Invalidation struct {
	Origin    string `json:"origin"`
	ElementID string `json:"element_id,omitempty"`
}

// RedisInvalidationBus fans style writes out over redis pub/sub. Messages published by the same
// origin are not delivered back to it.
type RedisInvalidationBus struct {
	client *redis.Client
	origin string
	logger *zap.Logger
}

// NewRedisInvalidationBus returns a bus publishing as origin.
func NewRedisInvalidationBus(client *redis.Client, origin string, logger *zap.Logger) *RedisInvalidationBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisInvalidationBus{client: client, origin: origin, logger: logger}
}

// Publish announces a write of elementID; empty means many elements changed.
func (b *RedisInvalidationBus) Publish(ctx context.Context, elementID string) error {
	payload, err := json.Marshal(Invalidation{Origin: b.origin, ElementID: elementID})
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, InvalidationChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish style invalidation: %w", err)
	}
	return nil
}

// Subscribe calls handle for every invalidation from another origin until ctx is cancelled.
func (b *RedisInvalidationBus) Subscribe(ctx context.Context, handle func(context.Context, Invalidation)) error {
	sub := b.client.Subscribe(ctx, InvalidationChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", InvalidationChannel, err)
	}
	b.logger.Info("listening for style invalidations", zap.String("channel", InvalidationChannel))

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			inv, err := DecodeInvalidation(msg.Payload)
			if err != nil {
				b.logger.Warn("dropping malformed style invalidation", zap.Error(err))
				continue
			}
			if inv.Origin == b.origin {
				continue
			}
			handle(ctx, inv)
		}
	}
}

// DecodeInvalidation parses a pub/sub payload.
func DecodeInvalidation(payload string) (Invalidation, error) {
	var inv Invalidation
	if err := json.Unmarshal([]byte(payload), &inv); err != nil {
		return Invalidation{}, fmt.Errorf("decode style invalidation: %w", err)
	}
	return inv, nil
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sitecms/backend/services/pricing-service/internal/pricing"
)

// TierCache keeps resolved override tables in redis.
type TierCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTierCache returns redis-backed cache.
func NewTierCache(client *redis.Client, ttl time.Duration) *TierCache {
	return &TierCache{client: client, ttl: ttl}
}

func (c *TierCache) key(plan pricing.PlanFamily) string {
	return fmt.Sprintf("pricing:tiers:%s", plan)
}

// Get returns cached tiers; a miss is reported as redis.Nil.
func (c *TierCache) Get(ctx context.Context, plan pricing.PlanFamily) ([]pricing.Tier, error) {
	data, err := c.client.Get(ctx, c.key(plan)).Bytes()
	if err != nil {
		return nil, err
	}
	var tiers []pricing.Tier
	if err := json.Unmarshal(data, &tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

// Set caches tiers.
func (c *TierCache) Set(ctx context.Context, plan pricing.PlanFamily, tiers []pricing.Tier) error {
	data, err := json.Marshal(tiers)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(plan), data, c.ttl).Err()
}

// Delete drops the cached table of a plan.
func (c *TierCache) Delete(ctx context.Context, plan pricing.PlanFamily) error {
	return c.client.Del(ctx, c.key(plan)).Err()
}

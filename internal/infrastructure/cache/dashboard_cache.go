package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sangkips/nippo-api/internal/domain/sales"
)

const keyPrefix = "nippo:dashboard:v1"

// DashboardCache stores computed dashboards as JSON in Redis
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDashboardCache constructs a cache helper
func NewDashboardCache(client *redis.Client, ttl time.Duration) *DashboardCache {
	return &DashboardCache{client: client, ttl: ttl}
}

// GetJSON unmarshals a cached payload into dst. It reports whether the key existed.
func (c *DashboardCache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil || c.client == nil || key == "" {
		return false, nil
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serialises v and stores it with the configured TTL
func (c *DashboardCache) SetJSON(ctx context.Context, key string, v any) error {
	if c == nil || c.client == nil || key == "" || c.ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// DashboardKey identifies a dashboard by as-of day, target and scope
func DashboardKey(q sales.Query) string {
	return fmt.Sprintf("%s:%s:%s:u=%s:s=%s",
		keyPrefix,
		q.AsOf.Format(sales.DateLayout),
		q.MonthlyTarget.String(),
		q.Scope.UserID,
		q.Scope.StoreID,
	)
}

// InvalidateDashboards drops every cached dashboard. Any order write can move
// month totals and rankings for later as-of days, so eviction is not per day.
func (c *DashboardCache) InvalidateDashboards(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, keyPrefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Package redis keeps short-lived idempotency markers in Redis.
package redis

import (
	"context"
	"time"

	"campusdelivery/internal/core/ports"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "webhook:"

// WebhookDeduplicator marks gateway notifications as processed with SET NX
// and a TTL. The first caller for a key within the TTL wins.
type WebhookDeduplicator struct {
	c   redis.UniversalClient
	ttl time.Duration
}

var _ ports.WebhookDeduplicator = (*WebhookDeduplicator)(nil)

func NewWebhookDeduplicator(addr string, ttl time.Duration) *WebhookDeduplicator {
	return NewWebhookDeduplicatorWithClient(redis.NewClient(&redis.Options{Addr: addr}), ttl)
}

func NewWebhookDeduplicatorWithClient(c redis.UniversalClient, ttl time.Duration) *WebhookDeduplicator {
	return &WebhookDeduplicator{c: c, ttl: ttl}
}

func (d *WebhookDeduplicator) MarkProcessed(ctx context.Context, key string) (bool, error) {
	ok, err := d.c.SetNX(ctx, keyPrefix+key, time.Now().UTC().Format(time.RFC3339), d.ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "redis setnx")
	}
	return ok, nil
}

func (d *WebhookDeduplicator) Forget(ctx context.Context, key string) error {
	if err := d.c.Del(ctx, keyPrefix+key).Err(); err != nil {
		return errors.Wrap(err, "redis del")
	}
	return nil
}

func (d *WebhookDeduplicator) Ping(ctx context.Context) error {
	return d.c.Ping(ctx).Err()
}

func (d *WebhookDeduplicator) Close() error {
	return d.c.Close()
}

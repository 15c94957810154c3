package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// KeyPrefix namespaces cart keys in Redis.
	KeyPrefix  = "jp-cart:"
	DefaultTTL = 30 * 24 * time.Hour
)

// RedisPersister keeps each cart as a JSON array under jp-cart:<id>.
type RedisPersister struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisPersister(rdb redis.Cmdable, ttl time.Duration) *RedisPersister {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisPersister{rdb: rdb, ttl: ttl}
}

func (p *RedisPersister) Load(ctx context.Context, cartID string) ([]Item, error) {
	raw, err := p.rdb.Get(ctx, KeyPrefix+cartID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		// A corrupt entry is treated as an empty cart.
		log.Printf("[cart] ⚠️ discarding unreadable cart %s: %v", cartID, err)
		return nil, nil
	}
	return items, nil
}

func (p *RedisPersister) Save(ctx context.Context, cartID string, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return p.rdb.Set(ctx, KeyPrefix+cartID, data, p.ttl).Err()
}

func (p *RedisPersister) Delete(ctx context.Context, cartID string) error {
	return p.rdb.Del(ctx, KeyPrefix+cartID).Err()
}

package checkout

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReconcileQueueKey is a Redis hash of payment intent id → entry JSON.
const ReconcileQueueKey = "jp-reconcile"

// ReconciliationEntry is a paid intent with no recorded order.
type ReconciliationEntry struct {
	PaymentIntentID string    `json:"payment_intent_id"`
	CartID          string    `json:"cart_id"`
	CustomerEmail   string    `json:"customer_email,omitempty"`
	AmountMinor     int64     `json:"amount_minor"`
	Currency        string    `json:"currency"`
	Reason          string    `json:"reason"`
	FlaggedAt       time.Time `json:"flagged_at"`
}

// ReconciliationQueue holds at most one entry per intent. Flag replaces an
// existing entry; Resolve removes it once the order is recorded.
type ReconciliationQueue interface {
	Flag(ctx context.Context, entry ReconciliationEntry) error
	Resolve(ctx context.Context, paymentIntentID string) error
	Pending(ctx context.Context, limit int64) ([]ReconciliationEntry, error)
}

type RedisReconciliationQueue struct {
	rdb redis.Cmdable
}

func NewRedisReconciliationQueue(rdb redis.Cmdable) *RedisReconciliationQueue {
	return &RedisReconciliationQueue{rdb: rdb}
}

func (q *RedisReconciliationQueue) Flag(ctx context.Context, entry ReconciliationEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return q.rdb.HSet(ctx, ReconcileQueueKey, entry.PaymentIntentID, data).Err()
}

func (q *RedisReconciliationQueue) Resolve(ctx context.Context, paymentIntentID string) error {
	return q.rdb.HDel(ctx, ReconcileQueueKey, paymentIntentID).Err()
}

// Pending returns the oldest entries first.
func (q *RedisReconciliationQueue) Pending(ctx context.Context, limit int64) ([]ReconciliationEntry, error) {
	raws, err := q.rdb.HGetAll(ctx, ReconcileQueueKey).Result()
	if err != nil {
		return nil, err
	}
	out := make([]ReconciliationEntry, 0, len(raws))
	for _, raw := range raws {
		var e ReconciliationEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return oldestFirst(out, limit), nil
}

func oldestFirst(entries []ReconciliationEntry, limit int64) []ReconciliationEntry {
	if limit <= 0 {
		limit = 100
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].FlaggedAt.Equal(entries[j].FlaggedAt) {
			return entries[i].FlaggedAt.Before(entries[j].FlaggedAt)
		}
		return entries[i].PaymentIntentID < entries[j].PaymentIntentID
	})
	if int64(len(entries)) > limit {
		entries = entries[:limit]
	}
	return entries
}

// MemoryReconciliationQueue is the in-process queue used by tests.
type MemoryReconciliationQueue struct {
	mu      sync.Mutex
	entries map[string]ReconciliationEntry
}

func (q *MemoryReconciliationQueue) Flag(_ context.Context, entry ReconciliationEntry) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.entries == nil {
		q.entries = make(map[string]ReconciliationEntry)
	}
	q.entries[entry.PaymentIntentID] = entry
	return nil
}

func (q *MemoryReconciliationQueue) Resolve(_ context.Context, paymentIntentID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.entries, paymentIntentID)
	return nil
}

func (q *MemoryReconciliationQueue) Pending(_ context.Context, limit int64) ([]ReconciliationEntry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]ReconciliationEntry, 0, len(q.entries))
	for _, e := range q.entries {
		out = append(out, e)
	}
	return oldestFirst(out, limit), nil
}

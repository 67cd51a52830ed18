// Package queue is the durable dispatch queue between detection and
// delivery. Redis list for FIFO order, companion set for dedupe-key
// membership; both survive restarts.
package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"valuebet/internal/domain"
	"valuebet/internal/domain/entity"
	"valuebet/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	listKey = "dispatch:queue"
	setKey  = "dispatch:keys"
)

// Entry is one queued opportunity. EnqueuedAt orders the queue; the drain
// re-sorts each released batch by edge.
type Entry struct {
	Opportunity entity.Opportunity `json:"opportunity"`
	EnqueuedAt  time.Time          `json:"enqueued_at"`
}

type DispatchQueue struct {
	client *redis.Client
}

func NewDispatchQueue(client *redis.Client) *DispatchQueue {
	return &DispatchQueue{client: client}
}

// Enqueue appends the opportunity unless its dedupe key is already queued.
// Reports whether the entry was added.
func (q *DispatchQueue) Enqueue(ctx context.Context, op entity.Opportunity, now time.Time) (bool, error) {
	queued, err := q.Contains(ctx, op.DedupeKey())
	if err != nil {
		return false, err
	}

	if queued {
		return false, nil
	}

	payload, err := json.Marshal(Entry{Opportunity: op, EnqueuedAt: now})
	if err != nil {
		return false, fmt.Errorf("json.Marshal: %w", err)
	}

	pipe := q.client.TxPipeline()
	pipe.RPush(ctx, listKey, payload)
	pipe.SAdd(ctx, setKey, op.DedupeKey())

	if _, err = pipe.Exec(ctx); err != nil {
		return false, domain.WrapError(err, errcodes.TransportError, "enqueue "+op.DedupeKey())
	}

	return true, nil
}

// DrainBatch pops up to n oldest entries. Popped entries stay in the dedupe
// set until Ack or Requeue settles their fate, so a key in flight cannot be
// enqueued again.
func (q *DispatchQueue) DrainBatch(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	payloads, err := q.client.LPopCount(ctx, listKey, n).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, domain.WrapError(err, errcodes.TransportError, "drain dispatch queue")
	}

	entries := make([]Entry, 0, len(payloads))

	for _, payload := range payloads {
		var entry Entry
		if err = json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, fmt.Errorf("json.Unmarshal: %w", err)
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// Requeue puts a drained entry back at the head, preserving FIFO order for
// the next drain. Used when delivery fails.
func (q *DispatchQueue) Requeue(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err = q.client.LPush(ctx, listKey, payload).Err(); err != nil {
		return domain.WrapError(err, errcodes.TransportError, "requeue "+entry.Opportunity.DedupeKey())
	}

	return nil
}

// Ack releases a drained entry's dedupe key after successful delivery.
func (q *DispatchQueue) Ack(ctx context.Context, entry Entry) error {
	if err := q.client.SRem(ctx, setKey, entry.Opportunity.DedupeKey()).Err(); err != nil {
		return domain.WrapError(err, errcodes.TransportError, "ack "+entry.Opportunity.DedupeKey())
	}

	return nil
}

// Contains reports whether a dedupe key is queued or in flight.
func (q *DispatchQueue) Contains(ctx context.Context, dedupeKey string) (bool, error) {
	queued, err := q.client.SIsMember(ctx, setKey, dedupeKey).Result()
	if err != nil {
		return false, domain.WrapError(err, errcodes.TransportError, "check queue membership")
	}

	return queued, nil
}

// Depth is the number of waiting entries.
func (q *DispatchQueue) Depth(ctx context.Context) (int64, error) {
	depth, err := q.client.LLen(ctx, listKey).Result()
	if err != nil {
		return 0, domain.WrapError(err, errcodes.TransportError, "queue depth")
	}

	return depth, nil
}

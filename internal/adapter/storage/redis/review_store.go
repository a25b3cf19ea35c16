package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"shopfront-api/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// ReviewStore keeps each product's reviews in a Redis list, one JSON
// document per element. RPUSH is atomic, so concurrent appends from any
// number of processes never lose a record.
type ReviewStore struct {
	client *goredis.Client
	prefix string
}

// NewReviewStore creates a Redis-backed review store.
func NewReviewStore(client *goredis.Client) *ReviewStore {
	return &ReviewStore{
		client: client,
		prefix: "reviews:",
	}
}

// Fetch returns every review stored for productID in insertion order.
func (s *ReviewStore) Fetch(ctx context.Context, productID string) ([]domain.ReviewRecord, error) {
	raw, err := s.client.LRange(ctx, s.key(productID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange reviews: %w", err)
	}

	records := make([]domain.ReviewRecord, 0, len(raw))
	for i, item := range raw {
		var rec domain.ReviewRecord
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, fmt.Errorf("decoding review %d of %q: %w", i, productID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Append pushes record onto the end of productID's list.
func (s *ReviewStore) Append(ctx context.Context, productID string, record domain.ReviewRecord) (domain.ReviewRecord, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return domain.ReviewRecord{}, fmt.Errorf("encoding review: %w", err)
	}

	if err := s.client.RPush(ctx, s.key(productID), data).Err(); err != nil {
		return domain.ReviewRecord{}, fmt.Errorf("redis rpush review: %w", err)
	}
	return record, nil
}

func (s *ReviewStore) key(productID string) string {
	return s.prefix + productID
}

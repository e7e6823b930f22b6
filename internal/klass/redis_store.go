package klass

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"vardef/internal/klass/models"
	"vardef/pkg/platform/sentinel"
)

const snapshotKeyPrefix = "vardef:klass:snapshot:"

// RedisSnapshotStore keeps the last good snapshot of each classification as one JSON
// value per classification id. Keys never expire; a refresh overwrites them.
type RedisSnapshotStore struct {
	client redis.UniversalClient
}

func NewRedisSnapshotStore(client redis.UniversalClient) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

func (s *RedisSnapshotStore) Save(ctx context.Context, c *models.Classification) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode classification %s: %w", c.ID, err)
	}
	return s.client.Set(ctx, snapshotKeyPrefix+c.ID, data, 0).Err()
}

// Load returns sentinel.ErrNotFound when no snapshot was mirrored.
func (s *RedisSnapshotStore) Load(ctx context.Context, classificationID string) (*models.Classification, error) {
	data, err := s.client.Get(ctx, snapshotKeyPrefix+classificationID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load classification %s: %w", classificationID, err)
	}
	var c models.Classification
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode classification %s: %w", classificationID, sentinel.ErrBadData)
	}
	return &c, nil
}

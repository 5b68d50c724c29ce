package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ds124wfegd/visionpipe/internal/entity"
	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisRepository keeps documents under <prefix>:<image id>. A zero ttl never expires.
func NewRedisRepository(client *redis.Client, prefix string, ttl time.Duration) ResultRepository {
	return &redisRepository{client: client, prefix: prefix, ttl: ttl}
}

func (r *redisRepository) key(imageID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, imageID)
}

func (r *redisRepository) Save(ctx context.Context, imageID string, result *entity.LabelResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result %s: %w", imageID, err)
	}

	if err := r.client.Set(ctx, r.key(imageID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save result %s: %w", imageID, err)
	}
	return nil
}

func (r *redisRepository) FindByID(ctx context.Context, imageID string) (*entity.LabelResult, error) {
	data, err := r.client.Get(ctx, r.key(imageID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, entity.ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get result %s: %w", imageID, err)
	}

	var result entity.LabelResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result %s: %w", imageID, err)
	}
	return &result, nil
}

func (r *redisRepository) Close() error {
	return r.client.Close()
}

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/opsgrade/posture-engine/internal/models"
)

const (
	redisKeyPrefix = "posture:session:"
	redisIndexKey  = "posture:sessions"
)

// expiryGrace keeps the stored record around briefly past its logical
// expiry so the cleanup worker can observe and report the transition.
const expiryGrace = time.Hour

// RedisStore keeps live answer state in Redis so multiple instances can
// share sessions. Keys carry a TTL slightly past the session's own
// expiry; an index set tracks known session IDs.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies connectivity
func NewRedisStore(address, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Put stores the session JSON with a TTL derived from its expiry
func (r *RedisStore) Put(ctx context.Context, s *models.AssessmentSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(s.ExpiresAt) + expiryGrace
	if ttl <= 0 {
		ttl = expiryGrace
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+s.ID, data, ttl)
	pipe.SAdd(ctx, redisIndexKey, s.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// Get fetches and decodes a session, or returns nil when absent
func (r *RedisStore) Get(ctx context.Context, id string) (*models.AssessmentSession, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s models.AssessmentSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

// Delete removes the session record and its index entry
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, redisKeyPrefix+id)
	pipe.SRem(ctx, redisIndexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// ExpiredIDs returns indexed sessions whose record has expired, plus
// still-present records past their logical expiry.
func (r *RedisStore) ExpiredIDs(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, redisIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	var expired []string
	for _, id := range ids {
		s, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if s == nil || s.IsExpired() {
			expired = append(expired, id)
		}
	}
	return expired, nil
}

// Ping checks Redis connectivity
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (r *RedisStore) Close() error {
	return r.client.Close()
}

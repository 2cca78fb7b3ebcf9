// Package db holds the Redis-backed short-link store. The generator itself
// is stateless; Redis only keeps shared config states alive under short IDs
// until their TTL expires.
package db

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrShareNotFound is returned when a short ID does not exist or has expired.
var ErrShareNotFound = errors.New("share not found")

// shareIDBytes is the entropy per short ID; 8 bytes encode to 11 base64url
// characters, short enough for a link while making collisions negligible.
const shareIDBytes = 8

// RedisStore wraps a redis client and context for share-link operations.
type RedisStore struct {
	Client *redis.Client
	Ctx    context.Context
}

// InitRedis initializes a Redis client and returns a RedisStore.
func InitRedis(addr string) (*RedisStore, error) {
	rs := &RedisStore{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
		Ctx:    context.Background(),
	}

	// Add OpenTelemetry instrumentation to the Redis client
	if err := redisotel.InstrumentTracing(rs.Client); err != nil {
		return nil, fmt.Errorf("failed to instrument redis tracing: %w", err)
	}

	if err := rs.Client.Ping(rs.Ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	zap.L().Info("Connected to Redis", zap.String("addr", addr))
	return rs, nil
}

// NewShareID returns a fresh random short ID.
func NewShareID() (string, error) {
	buf := make([]byte, shareIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate share id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func shareKey(id string) string {
	return "share:" + id
}

// SaveShare stores an encoded config state under id with the given TTL.
// Existing IDs are never overwritten.
func (r *RedisStore) SaveShare(id, state string, ttl time.Duration) error {
	ok, err := r.Client.SetNX(r.Ctx, shareKey(id), state, ttl).Result()
	if err != nil {
		return fmt.Errorf("save share %s: %w", id, err)
	}
	if !ok {
		return fmt.Errorf("share id %s already exists", id)
	}
	return nil
}

// GetShare returns the encoded config state stored under id.
func (r *RedisStore) GetShare(id string) (string, error) {
	state, err := r.Client.Get(r.Ctx, shareKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrShareNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get share %s: %w", id, err)
	}
	return state, nil
}

// Close shuts down the Redis client.
func (r *RedisStore) Close() {
	if r != nil && r.Client != nil {
		if err := r.Client.Close(); err != nil {
			zap.L().Error("redis close", zap.Error(err))
		}
	}
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mit2nil/decorum/pkg/session"
)

// SessionTTL is how long an idle session survives in Redis.
const SessionTTL = 24 * time.Hour

// RedisService implements the Storage interface using Redis
type RedisService struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisService implements Storage interface
var _ Storage = (*RedisService)(nil)

// NewRedisService creates a new Redis storage instance
func NewRedisService(redisURL string, logger *slog.Logger) *RedisService {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	return &RedisService{
		client: rdb,
		logger: logger,
	}
}

func (r *RedisService) Ping(ctx context.Context) error {
	cmd := r.client.Ping(ctx)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisService) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisService) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

func (r *RedisService) SaveSession(ctx context.Context, s *session.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		r.logger.Error("Failed to marshal session", "id", s.ID, "error", err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	cmd := r.client.Set(ctx, sessionKey(s.ID), string(data), SessionTTL)
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to save session", "id", s.ID, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *RedisService) LoadSession(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	cmd := r.client.Get(ctx, sessionKey(id))
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Warn("Session not found", "id", id)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load session", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var s session.Session
	if err := json.Unmarshal([]byte(cmd.Val()), &s); err != nil {
		r.logger.Error("Failed to unmarshal session", "id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &s, nil
}

func (r *RedisService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	cmd := r.client.Del(ctx, sessionKey(id))
	if err := cmd.Err(); err != nil {
		r.logger.Error("Failed to delete session", "id", id, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/homevista/homevista-backend/internal/cache"
	"github.com/homevista/homevista-backend/internal/domain"
)

const (
	sessionKeyPrefix  = "session:"
	userSessionPrefix = "user_sessions:"
)

// RedisSessionRepository implements SessionRepository using Redis.
// Sessions live under session:{refresh_token} with a TTL matching the
// refresh token expiry; a per-user set indexes tokens for sign-out-all.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository creates a new RedisSessionRepository
func NewRedisSessionRepository(client *cache.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client.Client()}
}

func sessionKey(refreshToken string) string {
	return sessionKeyPrefix + refreshToken
}

func userSessionsKey(userID string) string {
	return userSessionPrefix + userID
}

// Create stores a session with the given time to live
func (r *RedisSessionRepository) Create(ctx context.Context, session *domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.RefreshToken), data, ttl)
	pipe.SAdd(ctx, userSessionsKey(session.UserID), session.RefreshToken)
	pipe.Expire(ctx, userSessionsKey(session.UserID), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// GetByRefreshToken retrieves a session by its refresh token
func (r *RedisSessionRepository) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(refreshToken)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	session := &domain.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, nil
}

// Delete removes a session by its refresh token
func (r *RedisSessionRepository) Delete(ctx context.Context, refreshToken string) error {
	session, err := r.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, sessionKey(refreshToken))
	if session != nil {
		pipe.SRem(ctx, userSessionsKey(session.UserID), refreshToken)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteByUserID removes all sessions for a user
func (r *RedisSessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	tokens, err := r.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	pipe := r.client.TxPipeline()
	for _, token := range tokens {
		pipe.Del(ctx, sessionKey(token))
	}
	pipe.Del(ctx, userSessionsKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRepo is the source of truth for credential revocation. A token is
// valid only while its session key exists; logout deletes the key, which
// revokes the token immediately regardless of its embedded expiry.
type TokenRepo struct {
	redisClient *redis.Client
}

func NewTokenRepo(rdb *redis.Client) *TokenRepo {
	return &TokenRepo{redisClient: rdb}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Save records an issued token for its owner. The TTL mirrors the token's
// expiry claim so stale sessions age out of the store on their own.
func (r *TokenRepo) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if err := r.redisClient.Set(ctx, sessionKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Find returns the owner of a stored token, or ErrNotFound for tokens
// that were never issued or have been revoked.
func (r *TokenRepo) Find(ctx context.Context, token string) (string, error) {
	userID, err := r.redisClient.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("find session: %w", err)
	}
	return userID, nil
}

// Delete revokes a token. Deleting an absent key is not an error.
func (r *TokenRepo) Delete(ctx context.Context, token string) error {
	if err := r.redisClient.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

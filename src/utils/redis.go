package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist records logged-out access tokens in Redis. With a nil client
// (Redis not configured) nothing is stored and every token is accepted.
type TokenBlacklist struct {
	client *redis.Client
}

func NewTokenBlacklist(client *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

func blacklistKey(token string) string {
	return fmt.Sprintf("blacklist:%s", token)
}

// Add blacklists token for ttl, the remaining lifetime of the token.
func (b *TokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if b == nil || b.client == nil {
		return nil
	}
	if err := b.client.Set(ctx, blacklistKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}
	return nil
}

// IsBlacklisted reports whether token was logged out.
func (b *TokenBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	if b == nil || b.client == nil {
		return false, nil
	}
	_, err := b.client.Get(ctx, blacklistKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return true, nil
}

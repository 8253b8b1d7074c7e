package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/miniiam/iam-service/internal/core/ports"
)

const profileTTL = time.Hour

// ProfileCache caches credential-free user profiles in Redis.
// Key format: profile:<user_id>
type ProfileCache struct {
	client *redis.Client
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

// Get returns the cached profile and whether the key was present.
func (c *ProfileCache) Get(ctx context.Context, userID string) (*ports.UserProfile, bool, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("profile cache get: %w", err)
	}

	var profile ports.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, false, fmt.Errorf("profile cache decode: %w", err)
	}
	return &profile, true, nil
}

// Set stores the profile (expires after profileTTL).
func (c *ProfileCache) Set(ctx context.Context, userID string, profile *ports.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(userID), raw, profileTTL).Err()
}

// Invalidate drops the cached profile, typically after a role assignment.
func (c *ProfileCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *ProfileCache) key(userID string) string {
	return "profile:" + userID
}

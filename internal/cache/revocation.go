package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const deviceRevocationPrefix = "revoked:device:"

// DeviceRevocationCache records revoked device sessions. Logout and the
// terminate-device endpoints write to it; the bearer middleware and the
// refresh path consult it, so tokens minted for a killed device stop working
// before they expire. The session store remains the authoritative
// reuse-detection gate.
type DeviceRevocationCache struct {
	client *redis.Client
}

// NewDeviceRevocationCache creates a cache backed by the global Redis client.
// Returns a cache with a nil client when Redis is not connected; all methods
// degrade to no-ops in that case.
func NewDeviceRevocationCache() *DeviceRevocationCache {
	return &DeviceRevocationCache{client: RedisClient}
}

// RevokeDevice marks a device session as revoked for ttl
func (c *DeviceRevocationCache) RevokeDevice(ctx context.Context, deviceID string, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, deviceRevocationPrefix+deviceID, "1", ttl).Err()
}

// IsDeviceRevoked reports whether a device session has been revoked
func (c *DeviceRevocationCache) IsDeviceRevoked(ctx context.Context, deviceID string) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}
	_, err := c.client.Get(ctx, deviceRevocationPrefix+deviceID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

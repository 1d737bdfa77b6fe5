package auth

import (
	"context"
	"log/slog"
	"time"
)

const revocationTimeout = 5 * time.Second

// RevocationStore records revoked device sessions. Logout and the
// terminate-device endpoints write to it with TTL equal to the access token
// lifetime, so access tokens minted for a killed session stop working before
// they expire. The session store stays the authoritative gate; a store
// failure is logged and treated as "not revoked".
type RevocationStore interface {
	RevokeDevice(ctx context.Context, deviceID string, ttl time.Duration) error
	IsDeviceRevoked(ctx context.Context, deviceID string) (bool, error)
}

func deviceRevoked(store RevocationStore, deviceID string) bool {
	if store == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), revocationTimeout)
	defer cancel()
	revoked, err := store.IsDeviceRevoked(ctx, deviceID)
	if err != nil {
		slog.Warn("failed to check device revocation", "error", err, "device_id", deviceID)
		return false
	}
	return revoked
}

func revokeDevice(store RevocationStore, deviceID string, ttl time.Duration) {
	if store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), revocationTimeout)
	defer cancel()
	if err := store.RevokeDevice(ctx, deviceID, ttl); err != nil {
		slog.Warn("failed to store device revocation", "error", err, "device_id", deviceID)
	}
}

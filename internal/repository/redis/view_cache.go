package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"
)

// Views are stored zstd-compressed; a full map view is mostly repeated keys.
var (
	viewEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	viewDecoder, _ = zstd.NewReader(nil)
)

// Key patterns for cached session data.
func viewKey(sessionID string) string  { return "session:" + sessionID + ":view" }
func ownerKey(sessionID string) string { return "session:" + sessionID + ":owner" }

// SetView stores the latest query view of a session. A zero ttl keeps it
// until deleted.
func (c *Client) SetView(ctx context.Context, sessionID string, view json.RawMessage, ttl time.Duration) error {
	return c.rdb.Set(ctx, viewKey(sessionID), viewEncoder.EncodeAll(view, nil), ttl).Err()
}

// GetView retrieves the cached view, or nil if it expired or never existed.
func (c *Client) GetView(ctx context.Context, sessionID string) (json.RawMessage, error) {
	data, err := c.rdb.Get(ctx, viewKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get view: %w", err)
	}
	raw, err := viewDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decode view: %w", err)
	}
	return json.RawMessage(raw), nil
}

// SetOwner records which player owns a session.
func (c *Client) SetOwner(ctx context.Context, sessionID, playerID string, ttl time.Duration) error {
	return c.rdb.Set(ctx, ownerKey(sessionID), playerID, ttl).Err()
}

// GetOwner returns the owning player ID, or "" if unknown.
func (c *Client) GetOwner(ctx context.Context, sessionID string) (string, error) {
	owner, err := c.rdb.Get(ctx, ownerKey(sessionID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get owner: %w", err)
	}
	return owner, nil
}

// DeleteSession removes all cached data for a session.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, viewKey(sessionID), ownerKey(sessionID)).Err()
}

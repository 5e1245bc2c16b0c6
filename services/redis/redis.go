package redis

import (
	redis_models "SteamProfile/models/redis"
	redis_utils "SteamProfile/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client instance. Anything other than a
// plain local address is parsed as a redis:// URL.
func NewRedisClient(Addr string, DB int) (*RedisClient, error) {
	var client *redis.Client
	if strings.Contains(Addr, "://") {
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			return nil, fmt.Errorf("error parsing Redis URL: %v", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{client: client}, nil
}

// NewFromClient wraps an existing go-redis client
func NewFromClient(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

// SaveSession caches a session until it expires
// Key format: "session:{id}"
func (rc *RedisClient) SaveSession(ctx context.Context, session *redis_models.CachedSession) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("error marshaling session data: %v", err)
	}
	return rc.client.Set(ctx, redis_utils.FormatSessionKey(session.SessionID), data, ttl).Err()
}

// GetSession returns the cached session, or nil when it is not cached
func (rc *RedisClient) GetSession(ctx context.Context, sessionID string) (*redis_models.CachedSession, error) {
	data, err := rc.client.Get(ctx, redis_utils.FormatSessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting session data: %v", err)
	}

	var session redis_models.CachedSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("error unmarshaling session data: %v", err)
	}
	return &session, nil
}

// DeleteSession drops the cached session and its pending last-seen entry
func (rc *RedisClient) DeleteSession(ctx context.Context, sessionID string) error {
	pipe := rc.client.TxPipeline()
	pipe.Del(ctx, redis_utils.FormatSessionKey(sessionID))
	pipe.HDel(ctx, redis_utils.LastSeenHashKey, sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error deleting session data: %v", err)
	}
	return nil
}

// TouchSession records activity on a session. SyncManager moves it to SQL later.
func (rc *RedisClient) TouchSession(ctx context.Context, sessionID string, at time.Time) error {
	return rc.client.HSet(ctx, redis_utils.LastSeenHashKey, sessionID, at.Unix()).Err()
}

// RestoreLastSeen puts popped entries back without overwriting a session that
// was touched again in the meantime. Such a touch is always the newer one.
func (rc *RedisClient) RestoreLastSeen(ctx context.Context, entries map[string]time.Time) error {
	if len(entries) == 0 {
		return nil
	}
	pipe := rc.client.Pipeline()
	for sessionID, at := range entries {
		pipe.HSetNX(ctx, redis_utils.LastSeenHashKey, sessionID, at.Unix())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error restoring last seen entries: %v", err)
	}
	return nil
}

// PopLastSeen atomically reads and clears the pending last-seen entries
func (rc *RedisClient) PopLastSeen(ctx context.Context) (map[string]time.Time, error) {
	var entries *redis.MapStringStringCmd
	_, err := rc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		entries = pipe.HGetAll(ctx, redis_utils.LastSeenHashKey)
		pipe.Del(ctx, redis_utils.LastSeenHashKey)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error reading last seen entries: %v", err)
	}

	result := make(map[string]time.Time, len(entries.Val()))
	for sessionID, raw := range entries.Val() {
		unix, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		result[sessionID] = time.Unix(unix, 0).UTC()
	}
	return result, nil
}

// SetPresence marks a user online or offline
// Key format: "presence:{username}"
func (rc *RedisClient) SetPresence(ctx context.Context, username string, online bool) error {
	presence := redis_models.UserPresence{Username: username, Online: online, LastSeen: time.Now().UTC()}
	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("error marshaling presence: %v", err)
	}
	return rc.client.Set(ctx, redis_utils.FormatPresenceKey(username), data, 24*time.Hour).Err()
}

// GetPresence returns the last known presence; unknown users are offline
func (rc *RedisClient) GetPresence(ctx context.Context, username string) (*redis_models.UserPresence, error) {
	data, err := rc.client.Get(ctx, redis_utils.FormatPresenceKey(username)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return &redis_models.UserPresence{Username: username}, nil
		}
		return nil, fmt.Errorf("error getting presence: %v", err)
	}

	var presence redis_models.UserPresence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("error unmarshaling presence: %v", err)
	}
	return &presence, nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(ctx context.Context, keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}

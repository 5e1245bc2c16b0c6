package sync

import (
	"SteamProfile/database"
	"SteamProfile/services/redis"
	"SteamProfile/utils"
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

const touchSessionQuery = `UPDATE sessions SET last_seen = ? WHERE id = ? AND last_seen < ?`

// SyncManager moves state cached in Redis back into SQL
type SyncManager struct {
	redisClient *redis.RedisClient
	link        *database.DataLink
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(redisClient *redis.RedisClient, link *database.DataLink) *SyncManager {
	return &SyncManager{
		redisClient: redisClient,
		link:        link,
	}
}

// SyncSessions writes the pending last-seen timestamps into the sessions table
// in one transaction and returns how many rows changed. When the write fails
// the entries are put back so the next run retries them, unless the session
// was touched again meanwhile.
func (sm *SyncManager) SyncSessions(ctx context.Context) (int64, error) {
	if sm.redisClient == nil {
		return 0, nil
	}

	pending, err := sm.redisClient.PopLastSeen(ctx)
	if err != nil {
		return 0, fmt.Errorf("error getting last seen entries from Redis: %v", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	ids := make([]string, 0, len(pending))
	for id := range pending {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var updated int64
	err = sm.link.WithTransaction(ctx, func(tx *database.Tx) error {
		for _, id := range ids {
			seen := pending[id]
			n, err := tx.ExecuteNonQuery(ctx, touchSessionQuery, seen, id, seen)
			if err != nil {
				return err
			}
			updated += n
		}
		return nil
	})
	if err != nil {
		if restoreErr := sm.redisClient.RestoreLastSeen(ctx, pending); restoreErr != nil {
			utils.GetLogger().Warn("could not restore last seen entries",
				zap.Int("entries", len(pending)), zap.Error(restoreErr))
		}
		return 0, fmt.Errorf("error updating sessions: %w", err)
	}
	return updated, nil
}

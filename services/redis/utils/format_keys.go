package utils

/**
 * This file contains utility functions to format the keys for Redis
 * (key, value) pairs. It avoids having to call "fmt.Sprintf(...)"
 * with the same format spec every time, potentially confusing the key format.
 */

import "fmt"

// LastSeenHashKey is the hash of session id -> unix time waiting to be synced to SQL
const LastSeenHashKey = "sessions:last_seen"

func FormatSessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

func FormatPresenceKey(username string) string {
	return fmt.Sprintf("presence:%s", username)
}

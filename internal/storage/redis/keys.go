package redis

import (
	"fmt"

	"github.com/Jeet1511/EliteZero/internal/model"
)

// Key prefix for all bot data
const keyPrefix = "elitezero"

// statsKey returns the Redis key for the stats table snapshot
func statsKey() string {
	return fmt.Sprintf("%s:stats", keyPrefix)
}

// matchKey returns the Redis key for an archived match
func matchKey(id model.SessionID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// historyKey returns the Redis key for the LIST of a user's match ids
func historyKey(userID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:history:%s", keyPrefix, userID)
}

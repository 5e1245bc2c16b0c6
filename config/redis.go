package config

import (
	"SteamProfile/services/redis"
	"SteamProfile/utils"
)

// Connect_redis connects to REDIS_URL. An empty URL disables the cache and
// returns a nil client.
func Connect_redis(redisURL string) (*redis.RedisClient, error) {
	if redisURL == "" {
		utils.GetLogger().Warn("REDIS_URL not set, session cache disabled")
		return nil, nil
	}
	redisClient, err := redis.InitRedis(redisURL, 0)
	if err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Redis connection established")
	return redisClient, nil
}

package controllers

import (
	"SteamProfile/services/redis"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Endpoint just pings the server
// @Description Returns a basic message
// @Tags test
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// @Summary Health check
// @Description Checks the database and, when configured, Redis
// @Tags test
// @Produce json
// @Success 200 {object} object{status=string,database=string,redis=string}
// @Failure 503 {object} object{status=string,database=string,redis=string}
// @Router /health [get]
func Health(db *gorm.DB, redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		body := gin.H{"status": "ok", "database": "ok", "redis": "disabled"}

		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body["database"] = err.Error()
			}
		}
		if redisClient != nil {
			if err := redisClient.Ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body["redis"] = err.Error()
			} else {
				body["redis"] = "ok"
			}
		}
		c.JSON(status, body)
	}
}

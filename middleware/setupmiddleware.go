package middleware

import (
	"SteamProfile/config"
	"SteamProfile/utils"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetUpMiddleware installs the middleware every API request goes through
func SetUpMiddleware(r *gin.Engine, cfg *config.Config) {
	TrustProxies(r, cfg.TrustedProxies)
	r.Use(utils.Logger())
	r.Use(utils.ErrorHandler())
	r.Use(Metrics())

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))
}

// TrustProxies limits who may set X-Forwarded-For. The client IP keys the rate
// limiter, so an empty list makes gin use the peer address only.
func TrustProxies(r *gin.Engine, proxies []string) {
	if err := r.SetTrustedProxies(proxies); err != nil {
		utils.GetLogger().Warn("Invalid trusted proxies, trusting none", zap.Strings("proxies", proxies), zap.Error(err))
		r.SetTrustedProxies(nil)
	}
}

package main

import (
	"SteamProfile/app"
	"SteamProfile/config"
	"SteamProfile/middleware"
	"SteamProfile/utils"
	"SteamProfile/web"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// The web site runs against the database directly or, with
// USE_REMOTE_SERVICES, against the REST API at API_BASE_URL
func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := utils.InitLogger(cfg.GinMode)
	defer logger.Sync()
	gin.SetMode(cfg.GinMode)

	svc, err := app.Build(cfg, func() (app.LocalOptions, error) {
		db, err := config.ConnectGORM(cfg.DB)
		if err != nil {
			return app.LocalOptions{}, err
		}
		if cfg.DB.Migrate {
			if err := config.MigrateDatabase(db); err != nil {
				return app.LocalOptions{}, err
			}
		}
		opts := app.LocalOptions{
			DB:         db,
			DriverName: cfg.DB.Type,
			JWT:        utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL),
			SessionTTL: cfg.SessionTTL,
		}
		opts.Cache, err = config.Connect_redis(cfg.RedisURL)
		return opts, err
	})
	if err != nil {
		logger.Fatal("Error building services", zap.Error(err))
	}

	r := gin.New()
	middleware.TrustProxies(r, cfg.TrustedProxies)
	r.Use(utils.Logger())
	r.Use(gin.Recovery())
	web.NewSite(svc).Register(r, cfg.CookieKey, cfg.UseHTTPS)

	server := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Web site starting", zap.String("port", cfg.WebPort), zap.Bool("remote", svc.Remote))
		var err error
		if cfg.UseHTTPS {
			err = server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Error starting web site", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Web site forced to shutdown", zap.Error(err))
	}
}

package main

import (
	"SteamProfile/app"
	"SteamProfile/config"
	_ "SteamProfile/config/swagger"
	"SteamProfile/jobs"
	"SteamProfile/middleware"
	"SteamProfile/routes"
	"SteamProfile/services/redis"
	"SteamProfile/services/socket_io"
	"SteamProfile/sync"
	"SteamProfile/utils"
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

// @title SteamProfile API
// @version 1.0
// @description Gin-Gonic server for the SteamProfile social platform
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := utils.InitLogger(cfg.GinMode)
	defer logger.Sync()
	gin.SetMode(cfg.GinMode)

	logger.Info("Setting up server...")

	gormDB, err := config.ConnectGORM(cfg.DB)
	if err != nil {
		logger.Fatal("Error connecting to the database", zap.Error(err))
	}
	logger.Info("GORM Connected", zap.String("type", cfg.DB.Type))

	// Only migrate in development or during deployment
	if cfg.DB.Migrate {
		logger.Info("Migrating database...")
		if err := config.MigrateDatabase(gormDB); err != nil {
			logger.Fatal("Database migration failed", zap.Error(err))
		}
		logger.Info("Database migrated successfully")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Error reading GORM SQL instance", zap.Error(err))
	}
	defer sqlDB.Close()

	redisClient, err := config.Connect_redis(cfg.RedisURL)
	if err != nil {
		logger.Fatal("Error connecting to Redis", zap.Error(err))
	}
	defer redis.CloseRedis(redisClient)

	jwtManager := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	sio := socket_io.NewSocketServer()

	// The API always serves the database; UseRemoteServices only applies to clients
	svc, err := app.NewLocal(app.LocalOptions{
		DB:         gormDB,
		DriverName: cfg.DB.Type,
		Cache:      redisClient,
		Notifier:   sio,
		JWT:        jwtManager,
		SessionTTL: cfg.SessionTTL,
	})
	if err != nil {
		logger.Fatal("Error building services", zap.Error(err))
	}

	syncManager := sync.NewSyncManager(redisClient, svc.Maintenance.Link)
	cleanup := jobs.NewCleanupJob(cfg.CleanupSchedule).
		Add("expired sessions", svc.Maintenance.Sessions.DeleteExpired).
		Add("expired reset codes", svc.Maintenance.Resets.CleanupExpiredCodes).
		Add("session activity", syncManager.SyncSessions)
	if err := cleanup.Start(); err != nil {
		logger.Fatal("Error starting cleanup job", zap.Error(err))
	}
	defer cleanup.Stop()

	r := gin.New()
	middleware.SetUpMiddleware(r, cfg)
	routes.SetupRoutes(r, svc, routes.Dependencies{
		Config: cfg,
		JWT:    jwtManager,
		DB:     gormDB,
		Redis:  redisClient,
	})
	sio.Start(r, jwtManager, svc.Sessions, redisClient)
	defer sio.Close()

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port), zap.Bool("https", cfg.UseHTTPS))
		var err error
		if cfg.UseHTTPS {
			//SSL certification configuration for HTTPS
			err = server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Error starting server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}

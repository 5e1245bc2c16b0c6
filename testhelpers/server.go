package testhelpers

import (
	"SteamProfile/app"
	"SteamProfile/config"
	"SteamProfile/middleware"
	"SteamProfile/routes"
	"SteamProfile/utils"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TestServer is the full API router over an isolated SQLite database
type TestServer struct {
	Router   *gin.Engine
	Services *app.Services
	DB       *gorm.DB
	Config   *config.Config
	JWT      *utils.JWTManager
}

// TestConfig returns the settings the test router is built with
func TestConfig() *config.Config {
	return &config.Config{
		GinMode:          gin.TestMode,
		JWTSecret:        "test-secret",
		JWTTTL:           time.Hour,
		SessionTTL:       time.Hour,
		CORSOrigins:      []string{"*"},
		LoginRateLimit:   1000,
		LoginBurst:       1000,
		ExposeResetCodes: true,
		DB:               config.DatabaseConfig{Type: "sqlite"},
	}
}

// NewTestServer builds the router with every service local, no Redis and no
// notifier. tweak may adjust the configuration before routes are mounted.
func NewTestServer(t *testing.T, tweak func(*config.Config)) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := TestConfig()
	if tweak != nil {
		tweak(cfg)
	}
	db := SetupTestDB(t)
	jwtManager := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	svc, err := app.NewLocal(app.LocalOptions{
		DB:         db,
		DriverName: "sqlite",
		JWT:        jwtManager,
		SessionTTL: cfg.SessionTTL,
	})
	if err != nil {
		t.Fatalf("failed to build services: %v", err)
	}

	router := gin.New()
	middleware.SetUpMiddleware(router, cfg)
	routes.SetupRoutes(router, svc, routes.Dependencies{Config: cfg, JWT: jwtManager, DB: db})

	return &TestServer{Router: router, Services: svc, DB: db, Config: cfg, JWT: jwtManager}
}

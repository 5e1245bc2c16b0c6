package middleware_test

import (
	"SteamProfile/config"
	"SteamProfile/middleware"
	models "SteamProfile/models/postgres"
	"SteamProfile/utils"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterIsPerClient(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 2)
	r := gin.New()
	r.GET("/limited", limiter.Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"), "another client has its own bucket")
}

func TestRequireSelf(t *testing.T) {
	caller := &models.User{ID: 7, Username: "gaben"}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CallerKey, caller)
	})
	r.GET("/users/:name", func(c *gin.Context) {
		if err := middleware.RequireUsername(c, c.Param("name")); err != nil {
			utils.AbortWithError(c, err)
			return
		}
		if err := middleware.RequireSelf(c, 7); err != nil {
			utils.AbortWithError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/gaben", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/someone", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCallerWithoutAuthentication(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, err := middleware.Caller(c)
	assert.Error(t, err)
}

func TestMetricsAreExposed(t *testing.T) {
	r := gin.New()
	middleware.SetUpMiddleware(r, &config.Config{CORSOrigins: []string{"*"}})
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", middleware.MetricsHandler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ping", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `steamprofile_http_requests_total{method="GET",path="/ping",status="200"}`))
}

func TestCORSRestrictedOrigins(t *testing.T) {
	r := gin.New()
	middleware.SetUpMiddleware(r, &config.Config{CORSOrigins: []string{"https://steam.example"}})
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://steam.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://steam.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

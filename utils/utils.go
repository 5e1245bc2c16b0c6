package utils

import (
	"SteamProfile/apperrors"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger logs information about each request
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		GetLogger().Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(startTime)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// ErrorHandler handles global errors: recovers panics and writes errors pushed
// with c.Error when the handler did not answer itself
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				GetLogger().Error("panic while handling request",
					zap.Any("panic", r), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"type":  apperrors.Internal,
				})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			AbortWithError(c, c.Errors.Last().Err)
		}
	}
}

// AbortWithError answers with the status mapped from err and the
// {"error": ..., "type": ...} body every endpoint shares
func AbortWithError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	kind := apperrors.KindOf(err)
	message := err.Error()
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		GetLogger().Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		if kind == apperrors.Internal {
			message = "Internal server error"
		}
	}
	c.AbortWithStatusJSON(status, gin.H{"error": message, "type": kind})
}

// ParseIDParam reads a positive numeric path parameter
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidation("Invalid %s: %q", name, raw)
	}
	return uint(id), nil
}

// ParseIDQuery reads a positive numeric query parameter
func ParseIDQuery(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewValidation("Invalid %s: %q", name, raw)
	}
	return uint(id), nil
}

// QueryInt reads an integer query parameter, falling back to def
func QueryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

package web

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	csrfSessionKey = "csrf"
	csrfFormField  = "_csrf"
	csrfHeader     = "X-CSRF-Token"
	csrfContextKey = "csrfToken"
)

// CSRF keeps a token in the cookie session and rejects any state changing
// request that does not echo it in the form or the X-CSRF-Token header
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(csrfSessionKey).(string)
		if token == "" {
			token = uuid.NewString()
			session.Set(csrfSessionKey, token)
			if err := session.Save(); err != nil {
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
		}
		c.Set(csrfContextKey, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		sent := c.GetHeader(csrfHeader)
		if sent == "" {
			sent = c.PostForm(csrfFormField)
		}
		if subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// CSRFToken returns the token forms must post back
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfContextKey)
}

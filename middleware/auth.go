package middleware

import (
	"SteamProfile/apperrors"
	models "SteamProfile/models/postgres"
	"SteamProfile/services"
	"SteamProfile/utils"

	"github.com/gin-gonic/gin"
)

// Keys set on the gin context by AuthRequired
const (
	CallerKey    = "caller"
	SessionIDKey = "sessionId"
	TokenKey     = "token"
)

// AuthRequired validates the bearer token and restores the session it names.
// A revoked or expired session rejects the token even if its signature is valid.
func AuthRequired(jwtManager *utils.JWTManager, sessions services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwtManager.Parse(c.GetHeader("Authorization"))
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}

		details, err := sessions.RestoreSession(c.Request.Context(), claims.SessionID, userID)
		if err != nil {
			utils.AbortWithError(c, err)
			return
		}

		caller := details.User
		c.Set(CallerKey, &caller)
		c.Set(SessionIDKey, details.Session.ID)
		c.Set(TokenKey, c.GetHeader("Authorization"))
		c.Next()
	}
}

// Caller returns the authenticated user. It is only valid behind AuthRequired.
func Caller(c *gin.Context) (*models.User, error) {
	value, ok := c.Get(CallerKey)
	if !ok {
		return nil, apperrors.NewUnauthorized("Not authenticated")
	}
	user, ok := value.(*models.User)
	if !ok || user == nil {
		return nil, apperrors.NewUnauthorized("Not authenticated")
	}
	return user, nil
}

// RequireSelf fails with 403 unless the caller is userID
func RequireSelf(c *gin.Context, userID uint) error {
	caller, err := Caller(c)
	if err != nil {
		return err
	}
	if caller.ID != userID {
		return apperrors.NewForbidden("You can only act on your own account")
	}
	return nil
}

// RequireUsername fails with 403 unless the caller is username
func RequireUsername(c *gin.Context, username string) error {
	caller, err := Caller(c)
	if err != nil {
		return err
	}
	if caller.Username != username {
		return apperrors.NewForbidden("You can only act on your own account")
	}
	return nil
}

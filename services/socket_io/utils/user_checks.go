package socketio_utils

import (
	"SteamProfile/services"
	"SteamProfile/utils"
	"context"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"
)

// UserRoom is the room every socket of a user joins
func UserRoom(username string) socket.Room {
	return socket.Room("user:" + username)
}

// Function that verifies a socket.io client connection using JWT authentication.
// The token travels in the handshake auth data under "authorization" and must
// name a live session.
func VerifyUserConnection(ctx context.Context, client *socket.Socket, jwtManager *utils.JWTManager,
	sessions services.SessionService) (success bool, username string) {
	// Checks if we have auth data in the connection
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		client.Emit("error", gin.H{"error": "Authentication failed: missing auth data"})
		return false, ""
	}

	token, exists := authData["authorization"].(string)
	if !exists {
		client.Emit("error", gin.H{"error": "Authentication failed: missing authorization token"})
		return false, ""
	}

	claims, err := jwtManager.Parse(token)
	if err != nil {
		utils.GetLogger().Debug("socket rejected", zap.Error(err))
		client.Emit("error", gin.H{
			"error": "Authentication failed: invalid JWT. Remember to set it on the 'authorization' field and with the 'Bearer ' prefix.",
		})
		return false, ""
	}
	userID, err := claims.UserID()
	if err != nil {
		client.Emit("error", gin.H{"error": "Authentication failed: invalid JWT subject"})
		return false, ""
	}

	details, err := sessions.RestoreSession(ctx, claims.SessionID, userID)
	if err != nil {
		client.Emit("error", gin.H{"error": "Authentication failed: session expired"})
		return false, ""
	}
	return true, details.User.Username
}

package controllers

import (
	"SteamProfile/apperrors"
	"SteamProfile/middleware"
	"SteamProfile/services"
	"SteamProfile/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	Sessions services.SessionService
}

// ownsSession answers 404 unless the session exists and belongs to the caller
func ownsSession(c *gin.Context, sessions services.SessionService, sessionID string) bool {
	caller, err := middleware.Caller(c)
	if err != nil {
		utils.AbortWithError(c, err)
		return false
	}
	session, err := sessions.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		utils.AbortWithError(c, err)
		return false
	}
	if session.UserID != caller.ID {
		utils.AbortWithError(c, apperrors.NewNotFound("Session not found"))
		return false
	}
	return true
}

// @Summary Get one of the caller's sessions
// @Tags session
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} postgres.Session
// @Failure 404 {object} object{error=string}
// @Router /api/Session/{id} [get]
// @Security ApiKeyAuth
func (sc *SessionController) Get(c *gin.Context) {
	sessionID := c.Param("id")
	if !ownsSession(c, sc.Sessions, sessionID) {
		return
	}
	session, err := sc.Sessions.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// @Summary Restore a session
// @Description Returns the session and its user when the session is still valid
// @Tags session
// @Accept json
// @Produce json
// @Param input body services.SessionRequest true "Session id and user id"
// @Success 200 {object} services.SessionDetails
// @Failure 401 {object} object{error=string}
// @Router /api/Session/restore [post]
func (sc *SessionController) Restore(c *gin.Context) {
	var input services.SessionRequest
	if !bindJSON(c, &input) {
		return
	}
	details, err := sc.Sessions.RestoreSession(c.Request.Context(), input.SessionID, input.UserID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// @Summary End one of the caller's sessions
// @Tags session
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /api/Session/{id} [delete]
// @Security ApiKeyAuth
func (sc *SessionController) End(c *gin.Context) {
	sessionID := c.Param("id")
	if !ownsSession(c, sc.Sessions, sessionID) {
		return
	}
	if err := sc.Sessions.EndSession(c.Request.Context(), sessionID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Session ended")
}

// @Summary End every session of the caller
// @Tags session
// @Produce json
// @Param userId path int true "Caller id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Router /api/Session/user/{userId} [delete]
// @Security ApiKeyAuth
func (sc *SessionController) EndAll(c *gin.Context) {
	userID, ok := self(c, "userId")
	if !ok {
		return
	}
	if err := sc.Sessions.EndAllSessions(c.Request.Context(), userID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "All sessions ended")
}

package controllers

import (
	"SteamProfile/apperrors"
	"SteamProfile/middleware"
	"SteamProfile/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the request body, answering 400 on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.AbortWithError(c, apperrors.NewValidation("Invalid request body: %v", err))
		return false
	}
	return true
}

// pathID reads a numeric path parameter, answering 400 on failure
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := utils.ParseIDParam(c, name)
	if err != nil {
		utils.AbortWithError(c, err)
		return 0, false
	}
	return id, true
}

// actingUser reads ?userId= and checks it is the caller
func actingUser(c *gin.Context) (uint, bool) {
	userID, err := utils.ParseIDQuery(c, "userId")
	if err != nil {
		utils.AbortWithError(c, err)
		return 0, false
	}
	if err := middleware.RequireSelf(c, userID); err != nil {
		utils.AbortWithError(c, err)
		return 0, false
	}
	return userID, true
}

// self checks that a path parameter names the caller
func self(c *gin.Context, name string) (uint, bool) {
	userID, ok := pathID(c, name)
	if !ok {
		return 0, false
	}
	if err := middleware.RequireSelf(c, userID); err != nil {
		utils.AbortWithError(c, err)
		return 0, false
	}
	return userID, true
}

func message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

package controllers

import (
	"SteamProfile/services"
	"SteamProfile/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AchievementsController struct {
	Achievements services.AchievementsService
}

// @Summary List achievements
// @Tags achievements
// @Produce json
// @Success 200 {array} postgres.Achievement
// @Router /api/Achievements [get]
// @Security ApiKeyAuth
func (ac *AchievementsController) List(c *gin.Context) {
	achievements, err := ac.Achievements.GetAllAchievements(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, achievements)
}

// @Summary Achievements with unlock status
// @Tags achievements
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {array} postgres.AchievementStatus
// @Router /api/Achievements/user/{userId} [get]
// @Security ApiKeyAuth
func (ac *AchievementsController) ForUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	statuses, err := ac.Achievements.GetAchievementsWithStatus(c.Request.Context(), userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// @Summary Unlocked achievements of a user
// @Tags achievements
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {array} postgres.AchievementStatus
// @Router /api/Achievements/user/{userId}/unlocked [get]
// @Security ApiKeyAuth
func (ac *AchievementsController) Unlocked(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	statuses, err := ac.Achievements.GetUnlockedAchievements(c.Request.Context(), userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// @Summary Refresh achievements
// @Description Unlocks every achievement the caller now qualifies for and credits its points
// @Tags achievements
// @Produce json
// @Param userId path int true "Caller id"
// @Success 200 {array} postgres.Achievement "Newly unlocked"
// @Router /api/Achievements/user/{userId}/refresh [post]
// @Security ApiKeyAuth
func (ac *AchievementsController) Refresh(c *gin.Context) {
	userID, ok := self(c, "userId")
	if !ok {
		return
	}
	unlocked, err := ac.Achievements.UpdateAchievements(c.Request.Context(), userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, unlocked)
}

package controllers

import (
	"SteamProfile/middleware"
	"SteamProfile/services"
	"SteamProfile/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type FeaturesController struct {
	Features services.FeaturesService
}

// @Summary List the feature catalog
// @Tags features
// @Produce json
// @Success 200 {array} postgres.Feature
// @Router /api/Features [get]
// @Security ApiKeyAuth
func (fc *FeaturesController) List(c *gin.Context) {
	features, err := fc.Features.GetAllFeatures(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, features)
}

// @Summary Features with purchase and equip flags for a user
// @Tags features
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {array} postgres.UserFeature
// @Router /api/Features/user/{userId} [get]
// @Security ApiKeyAuth
func (fc *FeaturesController) ForUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	features, err := fc.Features.GetUserFeatures(c.Request.Context(), userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, features)
}

// @Summary Features of a user grouped by type
// @Tags features
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {object} map[string][]postgres.UserFeature
// @Router /api/Features/user/{userId}/categories [get]
// @Security ApiKeyAuth
func (fc *FeaturesController) Categories(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	categories, err := fc.Features.GetFeaturesByCategories(c.Request.Context(), userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// @Summary Equipped features of a user
// @Tags features
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {array} postgres.Feature
// @Router /api/Features/user/{userId}/equipped [get]
// @Security ApiKeyAuth
func (fc *FeaturesController) Equipped(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	features, err := fc.Features.GetEquippedFeatures(c.Request.Context(), userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, features)
}

// @Summary Check whether a user owns a feature
// @Tags features
// @Produce json
// @Param userId path int true "User id"
// @Param featureId path int true "Feature id"
// @Success 200 {object} object{purchased=boolean}
// @Router /api/Features/purchased/{userId}/{featureId} [get]
// @Security ApiKeyAuth
func (fc *FeaturesController) Purchased(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	featureID, ok := pathID(c, "featureId")
	if !ok {
		return
	}
	purchased, err := fc.Features.IsFeaturePurchased(c.Request.Context(), userID, featureID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"purchased": purchased})
}

// featureRequest binds the body and checks it acts for the caller
func featureRequest(c *gin.Context) (services.FeatureRequest, bool) {
	var input services.FeatureRequest
	if !bindJSON(c, &input) {
		return input, false
	}
	if err := middleware.RequireSelf(c, input.UserID); err != nil {
		utils.AbortWithError(c, err)
		return input, false
	}
	return input, true
}

// @Summary Purchase a feature
// @Description Debits the price from the caller's wallet and records ownership in one transaction
// @Tags features
// @Accept json
// @Produce json
// @Param input body services.FeatureRequest true "User and feature"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string} "Insufficient funds or invalid feature"
// @Failure 409 {object} object{error=string} "Already purchased"
// @Router /api/Features/purchase [post]
// @Security ApiKeyAuth
func (fc *FeaturesController) Purchase(c *gin.Context) {
	input, ok := featureRequest(c)
	if !ok {
		return
	}
	if err := fc.Features.PurchaseFeature(c.Request.Context(), input.UserID, input.FeatureID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Feature purchased")
}

// @Summary Equip a purchased feature
// @Description Unequips any other feature of the same type
// @Tags features
// @Accept json
// @Produce json
// @Param input body services.FeatureRequest true "User and feature"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string} "Not purchased"
// @Router /api/Features/equip [post]
// @Security ApiKeyAuth
func (fc *FeaturesController) Equip(c *gin.Context) {
	input, ok := featureRequest(c)
	if !ok {
		return
	}
	if err := fc.Features.EquipFeature(c.Request.Context(), input.UserID, input.FeatureID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Feature equipped")
}

// @Summary Unequip a feature
// @Tags features
// @Accept json
// @Produce json
// @Param input body services.FeatureRequest true "User and feature"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /api/Features/unequip [post]
// @Security ApiKeyAuth
func (fc *FeaturesController) Unequip(c *gin.Context) {
	input, ok := featureRequest(c)
	if !ok {
		return
	}
	if err := fc.Features.UnequipFeature(c.Request.Context(), input.UserID, input.FeatureID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Feature unequipped")
}

package controllers

import (
	"SteamProfile/apperrors"
	"SteamProfile/services"
	"SteamProfile/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ReviewsController struct {
	Reviews services.ReviewsService
}

// @Summary Reviews of a game
// @Tags reviews
// @Produce json
// @Param gameId path int true "Game id"
// @Param sortBy query string false "newest, oldest, helpful or rating"
// @Param recommended query bool false "Only recommended (true) or not recommended (false) reviews"
// @Success 200 {array} postgres.Review
// @Router /api/Reviews/game/{gameId} [get]
// @Security ApiKeyAuth
func (rc *ReviewsController) ForGame(c *gin.Context) {
	gameID, ok := pathID(c, "gameId")
	if !ok {
		return
	}
	query := services.ReviewQuery{SortBy: c.Query("sortBy")}
	if raw := c.Query("recommended"); raw != "" {
		recommended, err := strconv.ParseBool(raw)
		if err != nil {
			utils.AbortWithError(c, apperrors.NewValidation("Invalid recommended: %q", raw))
			return
		}
		query.Recommended = &recommended
	}
	reviews, err := rc.Reviews.GetReviewsForGame(c.Request.Context(), gameID, query)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// @Summary Review statistics of a game
// @Tags reviews
// @Produce json
// @Param gameId path int true "Game id"
// @Success 200 {object} postgres.ReviewStats
// @Router /api/Reviews/game/{gameId}/stats [get]
// @Security ApiKeyAuth
func (rc *ReviewsController) Stats(c *gin.Context) {
	gameID, ok := pathID(c, "gameId")
	if !ok {
		return
	}
	stats, err := rc.Reviews.GetReviewStatistics(c.Request.Context(), gameID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// @Summary Reviews written by a user
// @Tags reviews
// @Produce json
// @Param userId path int true "User id"
// @Success 200 {array} postgres.Review
// @Router /api/Reviews/user/{userId} [get]
// @Security ApiKeyAuth
func (rc *ReviewsController) ByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	reviews, err := rc.Reviews.GetReviewsByUser(c.Request.Context(), userID)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// @Summary Submit a review
// @Description One review per user and game
// @Tags reviews
// @Accept json
// @Produce json
// @Param userId query int true "Author id, must be the caller"
// @Param input body services.ReviewInput true "Review"
// @Success 201 {object} postgres.Review
// @Failure 400 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /api/Reviews [post]
// @Security ApiKeyAuth
func (rc *ReviewsController) Submit(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var input services.ReviewInput
	if !bindJSON(c, &input) {
		return
	}
	review, err := rc.Reviews.SubmitReview(c.Request.Context(), userID, input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

// @Summary Edit a review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review id"
// @Param userId query int true "Author id, must be the caller"
// @Param input body services.ReviewInput true "Review"
// @Success 200 {object} postgres.Review
// @Failure 403 {object} object{error=string}
// @Router /api/Reviews/{id} [put]
// @Security ApiKeyAuth
func (rc *ReviewsController) Edit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var input services.ReviewInput
	if !bindJSON(c, &input) {
		return
	}
	review, err := rc.Reviews.EditReview(c.Request.Context(), id, userID, input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Param id path int true "Review id"
// @Param userId query int true "Author id, must be the caller"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Router /api/Reviews/{id} [delete]
// @Security ApiKeyAuth
func (rc *ReviewsController) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := rc.Reviews.DeleteReview(c.Request.Context(), id, userID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Review deleted")
}

// @Summary Vote on a review
// @Description Toggles a helpful or funny vote of the caller. Voting twice removes the vote.
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review id"
// @Param userId query int true "Voter id, must be the caller"
// @Param input body services.VoteInput true "kind: helpful or funny"
// @Success 200 {object} postgres.Review
// @Router /api/Reviews/{id}/vote [post]
// @Security ApiKeyAuth
func (rc *ReviewsController) Vote(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var input services.VoteInput
	if !bindJSON(c, &input) {
		return
	}
	review, err := rc.Reviews.ToggleVote(c.Request.Context(), id, userID, input.Kind)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

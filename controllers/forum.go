package controllers

import (
	"SteamProfile/apperrors"
	"SteamProfile/services"
	"SteamProfile/utils"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ForumController struct {
	Forum services.ForumService
}

// @Summary Page through forum posts
// @Tags forum
// @Produce json
// @Param page query int false "Page, from 1"
// @Param pageSize query int false "Posts per page"
// @Param positiveOnly query bool false "Only posts with a positive score"
// @Param gameId query int false "Only posts about this game"
// @Param filter query string false "Text in the title"
// @Success 200 {array} postgres.ForumPost
// @Router /api/Forum/posts [get]
// @Security ApiKeyAuth
func (fc *ForumController) Posts(c *gin.Context) {
	query := services.ForumQuery{
		Page:         utils.QueryInt(c, "page", 1),
		PageSize:     utils.QueryInt(c, "pageSize", 0),
		PositiveOnly: c.Query("positiveOnly") == "true",
		Filter:       c.Query("filter"),
	}
	if raw := c.Query("gameId"); raw != "" {
		gameID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.AbortWithError(c, apperrors.NewValidation("Invalid gameId: %q", raw))
			return
		}
		id := uint(gameID)
		query.GameID = &id
	}
	posts, err := fc.Forum.GetPagedPosts(c.Request.Context(), query)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary Top forum posts
// @Tags forum
// @Produce json
// @Param span query string false "day, week, month, year or all"
// @Success 200 {array} postgres.ForumPost
// @Router /api/Forum/top [get]
// @Security ApiKeyAuth
func (fc *ForumController) Top(c *gin.Context) {
	span := services.TimeSpan(c.DefaultQuery("span", string(services.SpanAllTime)))
	posts, err := fc.Forum.GetTopPosts(c.Request.Context(), span)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary Get a forum post
// @Tags forum
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} postgres.ForumPost
// @Failure 404 {object} object{error=string}
// @Router /api/Forum/posts/{id} [get]
// @Security ApiKeyAuth
func (fc *ForumController) Post(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, err := fc.Forum.GetPost(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary Create a forum post
// @Tags forum
// @Accept json
// @Produce json
// @Param userId query int true "Author id, must be the caller"
// @Param input body services.ForumPostInput true "Post"
// @Success 201 {object} postgres.ForumPost
// @Failure 400 {object} object{error=string}
// @Router /api/Forum/posts [post]
// @Security ApiKeyAuth
func (fc *ForumController) CreatePost(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var input services.ForumPostInput
	if !bindJSON(c, &input) {
		return
	}
	post, err := fc.Forum.CreatePost(c.Request.Context(), userID, input)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// @Summary Delete a forum post
// @Description Only the author may delete
// @Tags forum
// @Produce json
// @Param id path int true "Post id"
// @Param userId query int true "Author id, must be the caller"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/Forum/posts/{id} [delete]
// @Security ApiKeyAuth
func (fc *ForumController) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := fc.Forum.DeletePost(c.Request.Context(), id, userID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Post deleted")
}

// vote binds {value} and answers with the new score
func (fc *ForumController) vote(c *gin.Context, op func(c *gin.Context, id, userID uint, value int) (int, error)) {
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
	score, err := op(c, id, userID, input.Value)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": score})
}

// @Summary Vote on a forum post
// @Description value is 1 or -1. Repeating a vote cancels it, the opposite vote replaces it.
// @Tags forum
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Param userId query int true "Voter id, must be the caller"
// @Param input body services.VoteInput true "value"
// @Success 200 {object} object{score=integer}
// @Router /api/Forum/posts/{id}/vote [post]
// @Security ApiKeyAuth
func (fc *ForumController) VotePost(c *gin.Context) {
	fc.vote(c, func(c *gin.Context, id, userID uint, value int) (int, error) {
		return fc.Forum.VotePost(c.Request.Context(), id, userID, value)
	})
}

// @Summary Vote on a forum comment
// @Tags forum
// @Accept json
// @Produce json
// @Param id path int true "Comment id"
// @Param userId query int true "Voter id, must be the caller"
// @Param input body services.VoteInput true "value"
// @Success 200 {object} object{score=integer}
// @Router /api/Forum/comments/{id}/vote [post]
// @Security ApiKeyAuth
func (fc *ForumController) VoteComment(c *gin.Context) {
	fc.vote(c, func(c *gin.Context, id, userID uint, value int) (int, error) {
		return fc.Forum.VoteComment(c.Request.Context(), id, userID, value)
	})
}

// @Summary Comments of a forum post
// @Tags forum
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {array} postgres.ForumComment
// @Router /api/Forum/posts/{id}/comments [get]
// @Security ApiKeyAuth
func (fc *ForumController) Comments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	comments, err := fc.Forum.GetComments(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// @Summary Comment on a forum post
// @Tags forum
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Param userId query int true "Author id, must be the caller"
// @Param input body services.ContentInput true "Comment"
// @Success 201 {object} postgres.ForumComment
// @Failure 404 {object} object{error=string}
// @Router /api/Forum/posts/{id}/comments [post]
// @Security ApiKeyAuth
func (fc *ForumController) CreateComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var input services.ContentInput
	if !bindJSON(c, &input) {
		return
	}
	comment, err := fc.Forum.CreateComment(c.Request.Context(), id, userID, input.Content)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// @Summary Delete a forum comment
// @Tags forum
// @Produce json
// @Param id path int true "Comment id"
// @Param userId query int true "Author id, must be the caller"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Router /api/Forum/comments/{id} [delete]
// @Security ApiKeyAuth
func (fc *ForumController) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := fc.Forum.DeleteComment(c.Request.Context(), id, userID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Comment deleted")
}

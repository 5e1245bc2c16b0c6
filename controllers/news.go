package controllers

import (
	"SteamProfile/services"
	"SteamProfile/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type NewsController struct {
	News services.NewsService
}

// @Summary Page through news posts
// @Tags news
// @Produce json
// @Param page query int false "Page, from 1"
// @Param search query string false "Text in the content"
// @Success 200 {array} postgres.NewsPost
// @Router /api/News/posts [get]
// @Security ApiKeyAuth
func (nc *NewsController) Posts(c *gin.Context) {
	posts, err := nc.News.GetPosts(c.Request.Context(), utils.QueryInt(c, "page", 1), c.Query("search"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// @Summary Get a news post
// @Tags news
// @Produce json
// @Param id path int true "Post id"
// @Success 200 {object} postgres.NewsPost
// @Failure 404 {object} object{error=string}
// @Router /api/News/posts/{id} [get]
// @Security ApiKeyAuth
func (nc *NewsController) Post(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, err := nc.News.GetPost(c.Request.Context(), id)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// @Summary Publish a news post
// @Description Only developers can publish news
// @Tags news
// @Accept json
// @Produce json
// @Param userId query int true "Author id, must be the caller"
// @Param input body services.ContentInput true "Post content"
// @Success 201 {object} postgres.NewsPost
// @Failure 403 {object} object{error=string}
// @Router /api/News/posts [post]
// @Security ApiKeyAuth
func (nc *NewsController) CreatePost(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	var input services.ContentInput
	if !bindJSON(c, &input) {
		return
	}
	post, err := nc.News.CreatePost(c.Request.Context(), userID, input.Content)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// @Summary Edit a news post
// @Tags news
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Param userId query int true "Author id, must be the caller"
// @Param input body services.ContentInput true "Post content"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Router /api/News/posts/{id} [put]
// @Security ApiKeyAuth
func (nc *NewsController) UpdatePost(c *gin.Context) {
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
	if err := nc.News.UpdatePost(c.Request.Context(), id, userID, input.Content); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Post updated")
}

// @Summary Delete a news post
// @Tags news
// @Produce json
// @Param id path int true "Post id"
// @Param userId query int true "Author id, must be the caller"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Router /api/News/posts/{id} [delete]
// @Security ApiKeyAuth
func (nc *NewsController) DeletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := nc.News.DeletePost(c.Request.Context(), id, userID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Post deleted")
}

// rate runs one of the rating operations for the caller
func (nc *NewsController) rate(c *gin.Context, op func(ctx *gin.Context, postID, userID uint) error, msg string) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := op(c, id, userID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, msg)
}

// @Summary Like a news post
// @Description Liking twice takes the like back
// @Tags news
// @Produce json
// @Param id path int true "Post id"
// @Param userId query int true "Caller id"
// @Success 200 {object} object{message=string}
// @Router /api/News/posts/{id}/like [post]
// @Security ApiKeyAuth
func (nc *NewsController) Like(c *gin.Context) {
	nc.rate(c, func(ctx *gin.Context, postID, userID uint) error {
		return nc.News.LikePost(ctx.Request.Context(), postID, userID)
	}, "Post rated")
}

// @Summary Dislike a news post
// @Tags news
// @Produce json
// @Param id path int true "Post id"
// @Param userId query int true "Caller id"
// @Success 200 {object} object{message=string}
// @Router /api/News/posts/{id}/dislike [post]
// @Security ApiKeyAuth
func (nc *NewsController) Dislike(c *gin.Context) {
	nc.rate(c, func(ctx *gin.Context, postID, userID uint) error {
		return nc.News.DislikePost(ctx.Request.Context(), postID, userID)
	}, "Post rated")
}

// @Summary Remove the caller's rating
// @Tags news
// @Produce json
// @Param id path int true "Post id"
// @Param userId query int true "Caller id"
// @Success 200 {object} object{message=string}
// @Router /api/News/posts/{id}/rating [delete]
// @Security ApiKeyAuth
func (nc *NewsController) RemoveRating(c *gin.Context) {
	nc.rate(c, func(ctx *gin.Context, postID, userID uint) error {
		return nc.News.RemoveRating(ctx.Request.Context(), postID, userID)
	}, "Rating removed")
}

// @Summary Comments of a news post
// @Tags news
// @Produce json
// @Param id path int true "Post id"
// @Param page query int false "Page, from 1"
// @Success 200 {array} postgres.NewsComment
// @Router /api/News/posts/{id}/comments [get]
// @Security ApiKeyAuth
func (nc *NewsController) Comments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	comments, err := nc.News.GetComments(c.Request.Context(), id, utils.QueryInt(c, "page", 1))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// @Summary Comment on a news post
// @Tags news
// @Accept json
// @Produce json
// @Param id path int true "Post id"
// @Param userId query int true "Author id, must be the caller"
// @Param input body services.ContentInput true "Comment"
// @Success 201 {object} postgres.NewsComment
// @Router /api/News/posts/{id}/comments [post]
// @Security ApiKeyAuth
func (nc *NewsController) CreateComment(c *gin.Context) {
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
	comment, err := nc.News.CreateComment(c.Request.Context(), id, userID, input.Content)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// @Summary Edit a news comment
// @Tags news
// @Accept json
// @Produce json
// @Param id path int true "Comment id"
// @Param userId query int true "Author id, must be the caller"
// @Param input body services.ContentInput true "Comment"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Router /api/News/comments/{id} [put]
// @Security ApiKeyAuth
func (nc *NewsController) UpdateComment(c *gin.Context) {
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
	if err := nc.News.UpdateComment(c.Request.Context(), id, userID, input.Content); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Comment updated")
}

// @Summary Delete a news comment
// @Tags news
// @Produce json
// @Param id path int true "Comment id"
// @Param userId query int true "Author id, must be the caller"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Router /api/News/comments/{id} [delete]
// @Security ApiKeyAuth
func (nc *NewsController) DeleteComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := nc.News.DeleteComment(c.Request.Context(), id, userID); err != nil {
		utils.AbortWithError(c, err)
		return
	}
	message(c, "Comment deleted")
}

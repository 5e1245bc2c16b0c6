package proxy

import (
	models "SteamProfile/models/postgres"
	"SteamProfile/services"
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type ReviewsServiceProxy struct {
	*ServiceProxy
}

func NewReviewsServiceProxy(base *ServiceProxy) *ReviewsServiceProxy {
	return &ReviewsServiceProxy{ServiceProxy: base}
}

func (p *ReviewsServiceProxy) SubmitReview(ctx context.Context, userID uint, input services.ReviewInput) (*models.Review, error) {
	var review models.Review
	if err := p.post(ctx, "/api/Reviews", userQuery(userID), input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (p *ReviewsServiceProxy) EditReview(ctx context.Context, reviewID, userID uint, input services.ReviewInput) (*models.Review, error) {
	var review models.Review
	if err := p.put(ctx, idPath("/api/Reviews/%d", reviewID), userQuery(userID), input, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (p *ReviewsServiceProxy) DeleteReview(ctx context.Context, reviewID, userID uint) error {
	return p.delete(ctx, idPath("/api/Reviews/%d", reviewID), userQuery(userID), nil, nil)
}

func (p *ReviewsServiceProxy) GetReviewsForGame(ctx context.Context, gameID uint, query services.ReviewQuery) ([]models.Review, error) {
	values := url.Values{}
	if query.SortBy != "" {
		values.Set("sortBy", query.SortBy)
	}
	if query.Recommended != nil {
		values.Set("recommended", strconv.FormatBool(*query.Recommended))
	}
	reviews := []models.Review{}
	err := p.get(ctx, idPath("/api/Reviews/game/%d", gameID), values, &reviews)
	return reviews, err
}

func (p *ReviewsServiceProxy) GetReviewsByUser(ctx context.Context, userID uint) ([]models.Review, error) {
	reviews := []models.Review{}
	err := p.get(ctx, idPath("/api/Reviews/user/%d", userID), nil, &reviews)
	return reviews, err
}

func (p *ReviewsServiceProxy) GetReviewStatistics(ctx context.Context, gameID uint) (*models.ReviewStats, error) {
	var stats models.ReviewStats
	if err := p.get(ctx, idPath("/api/Reviews/game/%d/stats", gameID), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (p *ReviewsServiceProxy) ToggleVote(ctx context.Context, reviewID, userID uint, kind string) (*models.Review, error) {
	var review models.Review
	if err := p.post(ctx, idPath("/api/Reviews/%d/vote", reviewID), userQuery(userID), services.VoteInput{Kind: kind}, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

type NewsServiceProxy struct {
	*ServiceProxy
}

func NewNewsServiceProxy(base *ServiceProxy) *NewsServiceProxy {
	return &NewsServiceProxy{ServiceProxy: base}
}

func pageQuery(page int) url.Values {
	return url.Values{"page": {strconv.Itoa(page)}}
}

func (p *NewsServiceProxy) GetPosts(ctx context.Context, page int, search string) ([]models.NewsPost, error) {
	query := pageQuery(page)
	if search != "" {
		query.Set("search", search)
	}
	posts := []models.NewsPost{}
	err := p.get(ctx, "/api/News/posts", query, &posts)
	return posts, err
}

func (p *NewsServiceProxy) GetPost(ctx context.Context, postID uint) (*models.NewsPost, error) {
	var post models.NewsPost
	if err := p.get(ctx, idPath("/api/News/posts/%d", postID), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (p *NewsServiceProxy) CreatePost(ctx context.Context, authorID uint, content string) (*models.NewsPost, error) {
	var post models.NewsPost
	if err := p.post(ctx, "/api/News/posts", userQuery(authorID), services.ContentInput{Content: content}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (p *NewsServiceProxy) UpdatePost(ctx context.Context, postID, authorID uint, content string) error {
	return p.put(ctx, idPath("/api/News/posts/%d", postID), userQuery(authorID), services.ContentInput{Content: content}, nil)
}

func (p *NewsServiceProxy) DeletePost(ctx context.Context, postID, authorID uint) error {
	return p.delete(ctx, idPath("/api/News/posts/%d", postID), userQuery(authorID), nil, nil)
}

func (p *NewsServiceProxy) LikePost(ctx context.Context, postID, userID uint) error {
	return p.post(ctx, idPath("/api/News/posts/%d/like", postID), userQuery(userID), nil, nil)
}

func (p *NewsServiceProxy) DislikePost(ctx context.Context, postID, userID uint) error {
	return p.post(ctx, idPath("/api/News/posts/%d/dislike", postID), userQuery(userID), nil, nil)
}

func (p *NewsServiceProxy) RemoveRating(ctx context.Context, postID, userID uint) error {
	return p.delete(ctx, idPath("/api/News/posts/%d/rating", postID), userQuery(userID), nil, nil)
}

func (p *NewsServiceProxy) GetComments(ctx context.Context, postID uint, page int) ([]models.NewsComment, error) {
	comments := []models.NewsComment{}
	err := p.get(ctx, idPath("/api/News/posts/%d/comments", postID), pageQuery(page), &comments)
	return comments, err
}

func (p *NewsServiceProxy) CreateComment(ctx context.Context, postID, authorID uint, content string) (*models.NewsComment, error) {
	var comment models.NewsComment
	err := p.post(ctx, idPath("/api/News/posts/%d/comments", postID), userQuery(authorID), services.ContentInput{Content: content}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (p *NewsServiceProxy) UpdateComment(ctx context.Context, commentID, authorID uint, content string) error {
	return p.put(ctx, idPath("/api/News/comments/%d", commentID), userQuery(authorID), services.ContentInput{Content: content}, nil)
}

func (p *NewsServiceProxy) DeleteComment(ctx context.Context, commentID, authorID uint) error {
	return p.delete(ctx, idPath("/api/News/comments/%d", commentID), userQuery(authorID), nil, nil)
}

type ForumServiceProxy struct {
	*ServiceProxy
}

func NewForumServiceProxy(base *ServiceProxy) *ForumServiceProxy {
	return &ForumServiceProxy{ServiceProxy: base}
}

func (p *ForumServiceProxy) GetPagedPosts(ctx context.Context, query services.ForumQuery) ([]models.ForumPost, error) {
	values := pageQuery(query.Page)
	if query.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(query.PageSize))
	}
	if query.PositiveOnly {
		values.Set("positiveOnly", "true")
	}
	if query.GameID != nil {
		values.Set("gameId", fmt.Sprint(*query.GameID))
	}
	if query.Filter != "" {
		values.Set("filter", query.Filter)
	}
	posts := []models.ForumPost{}
	err := p.get(ctx, "/api/Forum/posts", values, &posts)
	return posts, err
}

func (p *ForumServiceProxy) GetTopPosts(ctx context.Context, span services.TimeSpan) ([]models.ForumPost, error) {
	posts := []models.ForumPost{}
	err := p.get(ctx, "/api/Forum/top", url.Values{"span": {string(span)}}, &posts)
	return posts, err
}

func (p *ForumServiceProxy) GetPost(ctx context.Context, postID uint) (*models.ForumPost, error) {
	var post models.ForumPost
	if err := p.get(ctx, idPath("/api/Forum/posts/%d", postID), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (p *ForumServiceProxy) CreatePost(ctx context.Context, authorID uint, input services.ForumPostInput) (*models.ForumPost, error) {
	var post models.ForumPost
	if err := p.post(ctx, "/api/Forum/posts", userQuery(authorID), input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (p *ForumServiceProxy) DeletePost(ctx context.Context, postID, userID uint) error {
	return p.delete(ctx, idPath("/api/Forum/posts/%d", postID), userQuery(userID), nil, nil)
}

func (p *ForumServiceProxy) vote(ctx context.Context, path string, userID uint, value int) (int, error) {
	var resp struct {
		Score int `json:"score"`
	}
	err := p.post(ctx, path, userQuery(userID), services.VoteInput{Value: value}, &resp)
	return resp.Score, err
}

func (p *ForumServiceProxy) VotePost(ctx context.Context, postID, userID uint, value int) (int, error) {
	return p.vote(ctx, idPath("/api/Forum/posts/%d/vote", postID), userID, value)
}

func (p *ForumServiceProxy) GetComments(ctx context.Context, postID uint) ([]models.ForumComment, error) {
	comments := []models.ForumComment{}
	err := p.get(ctx, idPath("/api/Forum/posts/%d/comments", postID), nil, &comments)
	return comments, err
}

func (p *ForumServiceProxy) CreateComment(ctx context.Context, postID, authorID uint, body string) (*models.ForumComment, error) {
	var comment models.ForumComment
	err := p.post(ctx, idPath("/api/Forum/posts/%d/comments", postID), userQuery(authorID), services.ContentInput{Content: body}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (p *ForumServiceProxy) DeleteComment(ctx context.Context, commentID, userID uint) error {
	return p.delete(ctx, idPath("/api/Forum/comments/%d", commentID), userQuery(userID), nil, nil)
}

func (p *ForumServiceProxy) VoteComment(ctx context.Context, commentID, userID uint, value int) (int, error) {
	return p.vote(ctx, idPath("/api/Forum/comments/%d/vote", commentID), userID, value)
}

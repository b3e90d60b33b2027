package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
	"github.com/motoshop/motoshop/internal/core/services"
	"github.com/samber/lo"
)

type PostHandler struct {
	postService *services.PostService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

type PostRequest struct {
	Title   string `json:"title" binding:"required" example:"Season opener"`
	Content string `json:"content" binding:"required" example:"<p>The track is open.</p>"`
}

type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

type CommentRequest struct {
	Content string `json:"content" binding:"required" example:"See you there"`
}

type CommentResponse struct {
	ID       int64     `json:"id" example:"1"`
	PostID   int64     `json:"post_id" example:"1"`
	AuthorID int64     `json:"author_id" example:"2"`
	Content  string    `json:"content" example:"See you there"`
	Created  time.Time `json:"created"`
}

type PostResponse struct {
	ID       int64             `json:"id" example:"1"`
	Title    string            `json:"title" example:"Season opener"`
	Content  string            `json:"content"`
	AuthorID *int64            `json:"author_id" example:"1"`
	Created  time.Time         `json:"created"`
	Cover    string            `json:"cover,omitempty" example:"/media/posts_covers/5d1a.jpg"`
	Comments []CommentResponse `json:"comments,omitempty"`
}

func newCommentResponse(cm *domain.Comment, _ int) CommentResponse {
	return CommentResponse{
		ID:       cm.ID,
		PostID:   cm.PostID,
		AuthorID: cm.AuthorID,
		Content:  cm.Content,
		Created:  cm.Created,
	}
}

func newPostResponse(p *domain.Post, _ int) PostResponse {
	return PostResponse{
		ID:       p.ID,
		Title:    p.Title,
		Content:  p.Content,
		AuthorID: p.AuthorID,
		Created:  p.Created,
		Cover:    mediaURL(p.Cover),
		Comments: lo.Map(p.Comments, newCommentResponse),
	}
}

func NewPostHandler(postService *services.PostService, logger ports.LoggerPort, metrics ports.MetricsPort) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
		metrics:     metrics,
	}
}

// @Summary List posts
// @Tags posts
// @Produce json
// @Success 200 {object} successResponse{data=[]PostResponse} "Posts"
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	posts, err := h.postService.ListPosts(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Posts found", lo.Map(posts, newPostResponse))
}

// @Summary Get post
// @Description Post with its comments, newest first
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} successResponse{data=PostResponse} "Post found"
// @Failure 404 {object} errorResponse "Not found"
// @Router /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.GetPostWithComments(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Post found", newPostResponse(post, 0))
}

// @Summary List comments of a post
// @Description Newest first
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} successResponse{data=[]CommentResponse} "Comments"
// @Failure 404 {object} errorResponse "Not found"
// @Router /posts/{id}/comments [get]
func (h *PostHandler) ListComments(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if _, err := h.postService.GetPostByID(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	comments, err := h.postService.GetComments(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Comments retrieved", lo.Map(comments, newCommentResponse))
}

// @Summary Create post
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body PostRequest true "Post data"
// @Success 201 {object} successResponse{data=PostResponse} "Post created"
// @Failure 400 {object} errorResponse "Invalid request"
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), &domain.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: lo.ToPtr(payload.UserID),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusCreated, "Post created successfully", newPostResponse(post, 0))
}

// @Summary Update post
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body UpdatePostRequest true "Fields to change"
// @Success 200 {object} successResponse{data=PostResponse} "Post updated"
// @Failure 403 {object} errorResponse "Access denied"
// @Router /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	post, ok := h.editablePost(c)
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}

	updated, err := h.postService.UpdatePost(c.Request.Context(), post)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Post updated successfully", newPostResponse(updated, 0))
}

// @Summary Upload post cover
// @Tags posts
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Post ID"
// @Param cover formData file true "jpg, png or gif image"
// @Success 200 {object} successResponse{data=PostResponse} "Cover updated"
// @Failure 415 {object} errorResponse "Unsupported image type"
// @Router /posts/{id}/cover [put]
func (h *PostHandler) UploadCover(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	post, ok := h.editablePost(c)
	if !ok {
		return
	}

	upload, closeFn, err := formUpload(c, "cover")
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Cover file is required")
		return
	}
	defer closeFn()

	updated, err := h.postService.UpdateCover(c.Request.Context(), post.ID, upload)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Cover updated", newPostResponse(updated, 0))
}

// @Summary Delete post
// @Description Comments are deleted with the post
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} successResponse "Post deleted"
// @Failure 403 {object} errorResponse "Access denied"
// @Router /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	post, ok := h.editablePost(c)
	if !ok {
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), post.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Post deleted successfully", nil)
}

// @Summary Add comment
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body CommentRequest true "Comment"
// @Success 201 {object} successResponse{data=CommentResponse} "Comment added"
// @Failure 404 {object} errorResponse "Post not found"
// @Router /posts/{id}/comments [post]
func (h *PostHandler) AddComment(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	comment, err := h.postService.AddComment(c.Request.Context(), &domain.Comment{
		PostID:   postID,
		AuthorID: payload.UserID,
		Content:  req.Content,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusCreated, "Comment added", newCommentResponse(comment, 0))
}

// @Summary Delete comment
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Param id path int true "Post ID"
// @Param comment_id path int true "Comment ID"
// @Success 200 {object} successResponse "Comment deleted"
// @Failure 403 {object} errorResponse "Access denied"
// @Router /posts/{id}/comments/{comment_id} [delete]
func (h *PostHandler) DeleteComment(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID, ok := paramID(c, "id")
	if !ok {
		return
	}
	commentID, ok := paramID(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.postService.GetCommentByID(c.Request.Context(), commentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if comment.PostID != postID {
		newErrorResponse(c, http.StatusNotFound, "Not found")
		return
	}
	if !canAccess(payload, comment.AuthorID) {
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return
	}

	if err := h.postService.DeleteComment(c.Request.Context(), commentID); err != nil {
		handleServiceError(c, err)
		return
	}

	newSuccessResponse(c, http.StatusOK, "Comment deleted", nil)
}

// editablePost loads the :id post for its author or an admin. Posts whose
// author was deleted are admin-only.
func (h *PostHandler) editablePost(c *gin.Context) (*domain.Post, bool) {
	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}

	post, err := h.postService.GetPostByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return nil, false
	}
	if !canAccess(payload, lo.FromPtr(post.AuthorID)) {
		h.logger.Warn("Access denied to post", map[string]interface{}{
			"requester_id": payload.UserID,
			"post_id":      id,
		})
		newErrorResponse(c, http.StatusForbidden, "Access denied")
		return nil, false
	}
	return post, true
}

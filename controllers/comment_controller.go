package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/watchable/watchable/middleware"
	"github.com/watchable/watchable/services"
	"github.com/watchable/watchable/utils"
)

// CommentController manages comments on posts.
type CommentController struct {
	guard *services.RelationGuard
}

// NewCommentController creates a CommentController.
func NewCommentController(guard *services.RelationGuard) *CommentController {
	return &CommentController{guard: guard}
}

// CreateComment attaches a comment to an existing post.
func (c *CommentController) CreateComment(ctx *gin.Context) {
	var req struct {
		Body   string `json:"body" binding:"required"`
		PostID uint   `json:"post_id" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	body := utils.Sanitize(req.Body)
	if body == "" {
		utils.Error(ctx, http.StatusBadRequest, 40031, "comment body cannot be empty")
		return
	}

	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	comment, err := c.guard.CreateComment(user.ID, req.PostID, body)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to create comment")
		return
	}

	utils.InvalidateByPrefix(commentsCacheKey(req.PostID))

	utils.Success(ctx, gin.H{"message": "Comment created successfully", "comment": comment})
}

// DeleteComment removes a comment authored by the caller.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	commentID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid comment id")
		return
	}

	comment, err := c.guard.DeleteComment(user.ID, commentID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40402, "comment not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to delete comment")
		return
	}

	utils.InvalidateByPrefix(commentsCacheKey(comment.PostID))

	utils.Success(ctx, gin.H{"message": "Comment eliminated successfully"})
}

// ListComments returns a post's comments with their authors, newest first.
// Results are cached; mutations invalidate by post.
func (c *CommentController) ListComments(ctx *gin.Context) {
	postID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40033, "invalid post id")
		return
	}

	cacheKey := commentsCacheKey(postID)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	comments, err := c.guard.CommentsForPost(postID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to list comments")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: gin.H{"comments": comments}}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, gin.H{"comments": comments})
}

func commentsCacheKey(postID uint) string {
	return "cache:comments:post:" + strconv.FormatUint(uint64(postID), 10)
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/watchable/watchable/middleware"
	"github.com/watchable/watchable/services"
	"github.com/watchable/watchable/storage"
	"github.com/watchable/watchable/utils"
)

// Uploaded post images are capped at 50MB.
const maxImageSize = 50 * 1024 * 1024

// PostController manages post publication and the two feeds.
type PostController struct {
	guard *services.RelationGuard
	feed  *services.FeedAggregator
	files *storage.LocalStore
}

// NewPostController creates a PostController.
func NewPostController(guard *services.RelationGuard, feed *services.FeedAggregator, files *storage.LocalStore) *PostController {
	return &PostController{guard: guard, feed: feed, files: files}
}

// CreatePost publishes a new post from a multipart form with an optional image.
func (p *PostController) CreatePost(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(ctx.PostForm("title")))
	body := utils.Sanitize(ctx.PostForm("body"))
	if title == "" || body == "" {
		utils.Error(ctx, http.StatusBadRequest, 40020, "title and body are required")
		return
	}

	imagePath := ""
	if file, header, err := ctx.Request.FormFile("image"); err == nil {
		defer file.Close()
		if header.Size > maxImageSize {
			utils.Error(ctx, http.StatusBadRequest, 40021, "image exceeds 50MB")
			return
		}
		imagePath, err = p.files.Save(file, "post_images", header.Filename)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to save image")
			return
		}
	}

	post, err := p.guard.CreatePost(user.ID, title, body, imagePath)
	if err != nil {
		if imagePath != "" {
			_ = p.files.Remove(imagePath)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to create post")
		return
	}

	utils.Success(ctx, gin.H{"message": "Post created successfully", "post": post})
}

// UpdatePost lets the owner replace the post body. A non-owner gets the same
// 404 as a missing post.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "invalid request payload")
		return
	}

	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	postID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid post id")
		return
	}

	post, err := p.guard.UpdatePost(user.ID, postID, utils.Sanitize(req.Body))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to update post")
		return
	}

	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post owned by the caller.
func (p *PostController) DeletePost(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	postID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40023, "invalid post id")
		return
	}

	if err := p.guard.DeletePost(user.ID, postID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to delete post")
		return
	}

	utils.InvalidateByPrefix("cache:comments:post:" + strconv.FormatUint(uint64(postID), 10))

	utils.Success(ctx, gin.H{"message": "Post eliminated successfully"})
}

// GlobalFeed returns every other user's posts, newest first, with
// viewer-relative counters.
func (p *PostController) GlobalFeed(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	views, err := p.feed.GlobalFeed(user.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to load feed")
		return
	}

	utils.Success(ctx, gin.H{"posts": views})
}

// UserFeed returns a single author's posts with viewer-relative counters.
func (p *PostController) UserFeed(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	targetID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid user id")
		return
	}

	views, err := p.feed.UserFeed(user.ID, targetID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to load feed")
		return
	}

	utils.Success(ctx, gin.H{"posts": views})
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

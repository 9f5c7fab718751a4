package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/watchable/watchable/middleware"
	"github.com/watchable/watchable/services"
	"github.com/watchable/watchable/utils"
)

// LikeController manages likes on posts.
type LikeController struct {
	guard *services.RelationGuard
}

// NewLikeController creates a LikeController.
func NewLikeController(guard *services.RelationGuard) *LikeController {
	return &LikeController{guard: guard}
}

// LikePost records a like for the caller on a post, at most once.
func (l *LikeController) LikePost(ctx *gin.Context) {
	var req struct {
		PostID uint `json:"post_id" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	like, err := l.guard.Like(user.ID, req.PostID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		case errors.Is(err, services.ErrDuplicateLike):
			utils.Error(ctx, http.StatusConflict, 40903, "you already liked this post")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to create like")
		}
		return
	}

	utils.Success(ctx, gin.H{"message": "Like created successfully", "like": like})
}

// UnlikePost removes a like owned by the caller.
func (l *LikeController) UnlikePost(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	likeID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid like id")
		return
	}

	if err := l.guard.Unlike(user.ID, likeID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40403, "like not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to delete like")
		return
	}

	utils.Success(ctx, gin.H{"message": "Like eliminated successfully"})
}

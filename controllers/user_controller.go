package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/watchable/watchable/middleware"
	"github.com/watchable/watchable/services"
	"github.com/watchable/watchable/storage"
	"github.com/watchable/watchable/utils"
)

// UserController handles registration and profile management.
type UserController struct {
	users *services.UserService
	files *storage.LocalStore
}

// NewUserController creates a UserController.
func NewUserController(users *services.UserService, files *storage.LocalStore) *UserController {
	return &UserController{users: users, files: files}
}

// CreateUser registers a new account.
func (u *UserController) CreateUser(ctx *gin.Context) {
	var req struct {
		FullName string `json:"full_name" binding:"required,min=1"`
		Username string `json:"username" binding:"required,min=1,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=10"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	user, err := u.users.Register(
		utils.Sanitize(strings.TrimSpace(req.FullName)),
		strings.TrimSpace(req.Username),
		strings.TrimSpace(req.Email),
		req.Password,
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			utils.Error(ctx, http.StatusConflict, 40901, "email already registered")
		case errors.Is(err, services.ErrUsernameTaken):
			utils.Error(ctx, http.StatusConflict, 40902, "username already registered")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to create user")
		}
		return
	}

	utils.Success(ctx, gin.H{"message": "User created successfully", "user": user})
}

// Me returns the authenticated user's profile.
func (u *UserController) Me(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	utils.Success(ctx, user)
}

// UpdateProfile applies a partial profile update. Last write wins on
// concurrent updates.
func (u *UserController) UpdateProfile(ctx *gin.Context) {
	var req struct {
		FullName    string `json:"full_name"`
		Username    string `json:"username"`
		Email       string `json:"email"`
		Description string `json:"description"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid request payload")
		return
	}

	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	updated, err := u.users.UpdateProfile(user.ID, services.ProfileUpdate{
		FullName:    utils.Sanitize(strings.TrimSpace(req.FullName)),
		Username:    strings.TrimSpace(req.Username),
		Email:       strings.TrimSpace(req.Email),
		Description: utils.Sanitize(req.Description),
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			utils.Error(ctx, http.StatusConflict, 40901, "email already in use")
		case errors.Is(err, services.ErrUsernameTaken):
			utils.Error(ctx, http.StatusConflict, 40902, "username already taken")
		case errors.Is(err, services.ErrNotFound):
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to update profile")
		}
		return
	}

	utils.Success(ctx, gin.H{"message": "Profile updated successfully", "user": updated})
}

// ChangePassword verifies the current password and stores the new hash.
// Already-issued tokens remain valid until they expire.
func (u *UserController) ChangePassword(ctx *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required,min=10"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40012, "invalid request payload")
		return
	}

	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	if err := u.users.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.Error(ctx, http.StatusBadRequest, 40013, "incorrect current password")
		case errors.Is(err, services.ErrNotFound):
			utils.Error(ctx, http.StatusNotFound, 40410, "user not found")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to update password")
		}
		return
	}

	utils.Success(ctx, gin.H{"message": "Password updated successfully"})
}

// UploadProfilePicture stores the uploaded image and records its path on the
// user. A failed file write never touches the user row; a failed row write
// removes the file again.
func (u *UserController) UploadProfilePicture(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40014, "no file uploaded")
		return
	}
	defer file.Close()

	path, err := u.files.Save(file, "profile_pictures", header.Filename)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to save file")
		return
	}

	updated, err := u.users.SetProfilePicture(user.ID, path)
	if err != nil {
		_ = u.files.Remove(path)
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to update profile picture")
		return
	}

	utils.Success(ctx, gin.H{
		"message":         "Profile picture updated successfully",
		"profile_picture": updated.ProfilePicture,
	})
}

// Search finds users by username substring.
func (u *UserController) Search(ctx *gin.Context) {
	query := strings.TrimSpace(ctx.Query("query"))
	if query == "" {
		utils.Error(ctx, http.StatusBadRequest, 40015, "missing search query")
		return
	}

	users, err := u.users.Search(query)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50015, "failed to search users")
		return
	}

	utils.Success(ctx, gin.H{"users": users})
}

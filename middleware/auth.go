package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/watchable/watchable/models"
	"github.com/watchable/watchable/services"
	"github.com/watchable/watchable/utils"
)

// ContextUserKey is the key used to store the authenticated user in Gin context.
const ContextUserKey = "current_user"

// TokenResolver resolves a raw bearer token to a live user record.
type TokenResolver interface {
	ResolveToken(raw string) (*models.User, error)
}

// AuthRequired ensures the request carries a valid bearer token referencing
// an existing user. All failures surface as 401; the internal codes keep the
// missing/invalid/subject-gone distinction visible in logs and clients that
// care.
func AuthRequired(auth TokenResolver) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(ctx, http.StatusUnauthorized, 40101, "authorization header missing")
			ctx.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.Error(ctx, http.StatusUnauthorized, 40102, "invalid authorization header format")
			ctx.Abort()
			return
		}

		user, err := auth.ResolveToken(strings.TrimSpace(parts[1]))
		if err != nil {
			switch err {
			case services.ErrTokenMissing:
				utils.Error(ctx, http.StatusUnauthorized, 40103, "empty bearer token")
			case services.ErrSubjectNotFound:
				utils.Error(ctx, http.StatusUnauthorized, 40106, "could not validate user")
			default:
				utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid token")
			}
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserKey, user)
		ctx.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthRequired.
func CurrentUser(ctx *gin.Context) (*models.User, bool) {
	value, exists := ctx.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

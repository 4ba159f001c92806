package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mtakahara/project-task-api/internal/constants"
	apierrors "github.com/mtakahara/project-task-api/internal/errors"
	"github.com/mtakahara/project-task-api/internal/repository"
	"github.com/mtakahara/project-task-api/internal/token"
)

// RequireAuth authenticates requests via a bearer token. The token's
// subject is re-resolved to a live user record on every request, so a
// valid token for a since-deleted account is rejected here.
func RequireAuth(tokens *token.Service, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		subject, err := tokens.Validate(raw)
		if err != nil {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		user, err := users.FindByEmail(subject)
		if err != nil {
			apierrors.Unauthorized(c, "Unknown user")
			c.Abort()
			return
		}

		// The token must have been issued for the account it resolves
		// to, not merely be well-formed and unexpired.
		if !tokens.MatchesSubject(raw, user.Email) {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	id, ok := userID.(uint64)
	if !ok {
		return 0, false
	}
	return id, true
}

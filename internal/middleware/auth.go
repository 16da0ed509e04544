package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/issue-tracker-api/internal/auth"
	"github.com/yukikurage/issue-tracker-api/internal/constants"
	apierrors "github.com/yukikurage/issue-tracker-api/internal/errors"
	"github.com/yukikurage/issue-tracker-api/internal/models"
	"github.com/yukikurage/issue-tracker-api/internal/repository"
)

// RequireAuth validates the bearer token and loads the user it names. Every
// failure mode (missing header, bad scheme, expired or malformed token, user
// row gone) aborts with the same 401 so the failing step is not leaked.
func RequireAuth(tokens *auth.TokenService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != constants.BearerScheme {
			abortUnauthorized(c)
			return
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		user, err := userRepo.FindByID(userID)
		if err != nil {
			// Covers a structurally valid token for a since-deleted user.
			abortUnauthorized(c)
			return
		}

		c.Set(constants.ContextKeyUser, *user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	apierrors.Unauthorized(c, "")
	c.Abort()
}

// CurrentUser retrieves the authenticated user from the context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}

	user, ok := value.(models.User)
	if !ok {
		return models.User{}, false
	}

	return user, true
}

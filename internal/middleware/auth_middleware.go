package middleware

import (
	"strings"

	"gotours/internal/models"
	"gotours/internal/repositories/interfaces"
	"gotours/internal/utils"

	"github.com/gin-gonic/gin"
)

// Protect is the access-control gate. It extracts the bearer token, verifies
// it, resolves the user it was issued to and rejects tokens that predate a
// password change, then attaches the user to the request context. Every
// failure mode is a 401 through the error funnel.
func Protect(userRepo interfaces.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWith(c, utils.UnauthenticatedError(utils.ErrUnauthorized))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			abortWith(c, utils.UnauthenticatedError(utils.ErrUnauthorized))
			return
		}

		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			abortWith(c, utils.UnauthenticatedError("Invalid token. Please log in again"))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abortWith(c, utils.UnauthenticatedError("Invalid token. Please log in again"))
			return
		}

		// A valid token for a deleted account must not grant access.
		user, err := userRepo.FindByID(c.Request.Context(), userID)
		if err != nil {
			abortWith(c, utils.UnauthenticatedError(utils.ErrTokenUserGone))
			return
		}

		if claims.IssuedAt != nil && user.PasswordChangedAfter(claims.IssuedAt.Time) {
			abortWith(c, utils.UnauthenticatedError(utils.ErrStaleToken))
			return
		}

		c.Set(utils.ContextUserKey, user)
		c.Next()
	}
}

// RestrictTo gates a route on the attached user's role. It must be composed
// after Protect, which provides the identity it checks.
func RestrictTo(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortWith(c, utils.UnauthenticatedError(utils.ErrUnauthorized))
			return
		}

		if !allowed[user.Role] {
			abortWith(c, utils.ForbiddenError(utils.ErrForbidden))
			return
		}

		c.Next()
	}
}

// CurrentUser returns the identity attached by Protect, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(utils.ContextUserKey)
	if !exists {
		return nil
	}

	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func abortWith(c *gin.Context, err error) {
	c.Error(err)
	c.Abort()
}

package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hotgigs/talent/pkg/kernel"
)

const authContextKey = "auth_context"

// AuthContext is the authenticated identity attached to a request.
type AuthContext struct {
	UserID   *kernel.UserID
	TenantID kernel.TenantID
	Email    string
	Scopes   []string
}

// HasScope reports whether the context grants the required scope.
func (a *AuthContext) HasScope(required string) bool {
	for _, granted := range a.Scopes {
		if ScopeMatches(granted, required) {
			return true
		}
	}
	return false
}

// HasAnyScope reports whether the context grants at least one of the
// required scopes.
func (a *AuthContext) HasAnyScope(required ...string) bool {
	for _, r := range required {
		if a.HasScope(r) {
			return true
		}
	}
	return false
}

// SetAuthContext stores the auth context on the request.
func SetAuthContext(c *fiber.Ctx, authCtx *AuthContext) {
	c.Locals(authContextKey, authCtx)
}

// GetAuthContext retrieves the auth context set by the middleware.
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}

package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hotgigs/talent/pkg/kernel"
)

// UnifiedAuthMiddleware authenticates requests and enforces scopes.
type UnifiedAuthMiddleware struct {
	tokenService TokenService
}

// NewUnifiedAuthMiddleware creates the middleware over a token service.
func NewUnifiedAuthMiddleware(tokenService TokenService) *UnifiedAuthMiddleware {
	return &UnifiedAuthMiddleware{tokenService: tokenService}
}

// Authenticate validates the bearer token and attaches the auth
// context to the request.
func (m *UnifiedAuthMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization format")
		}

		claims, err := m.tokenService.ValidateAccessToken(parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		userID := kernel.UserID(claims.UserID)
		SetAuthContext(c, &AuthContext{
			UserID:   &userID,
			TenantID: claims.TenantID,
			Email:    claims.Email,
			Scopes:   claims.Scopes,
		})
		return c.Next()
	}
}

// RequireScope allows the request through when the auth context grants
// any of the listed scopes. Must run after Authenticate.
func (m *UnifiedAuthMiddleware) RequireScope(scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
		}
		if !authCtx.HasAnyScope(scopes...) {
			return fiber.NewError(fiber.StatusForbidden, "Insufficient scope")
		}
		return c.Next()
	}
}

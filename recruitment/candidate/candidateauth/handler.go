package candidateauth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hotgigs/talent/pkg/iam/auth"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/candidate"
)

// Handlers provides HTTP handlers for registration and login
type Handlers struct {
	service *AuthService
}

// NewHandlers creates a new auth handlers instance
func NewHandlers(service *AuthService) *Handlers {
	return &Handlers{service: service}
}

func (h *Handlers) RegisterRoutes(app *fiber.App, authMiddleware *auth.UnifiedAuthMiddleware) {
	group := app.Group("/api/v1/auth")

	group.Post("/register", h.Register)
	group.Post("/login", h.Login)
	group.Get("/me", authMiddleware.Authenticate(), h.Me)
}

// Register creates a candidate account
// POST /api/v1/auth/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrRegistry.New(CodeInvalidRegistration).WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Register(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login verifies credentials and issues a token
// POST /api/v1/auth/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return ErrRegistry.New(CodeInvalidRegistration).WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.Login(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Me returns the account behind the presented token
// GET /api/v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok || authContext.UserID == nil {
		return candidate.ErrInsufficientPermissions()
	}

	resp, err := h.service.GetAccount(c.Context(), kernel.CandidateID(*authContext.UserID))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

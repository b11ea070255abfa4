package candidateapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hotgigs/talent/pkg/iam/auth"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/candidate"
	"github.com/hotgigs/talent/recruitment/candidate/candidatesrv"
)

// Handlers provides HTTP handlers for candidate operations
type Handlers struct {
	service *candidatesrv.CandidateService
}

// NewHandlers creates a new candidate handlers instance
func NewHandlers(service *candidatesrv.CandidateService) *Handlers {
	return &Handlers{service: service}
}

func (h *Handlers) RegisterRoutes(app *fiber.App, authMiddleware *auth.UnifiedAuthMiddleware) {
	candidates := app.Group("/api/v1/candidates", authMiddleware.Authenticate())

	candidates.Get("/", authMiddleware.RequireScope(auth.ScopeCandidatesRead), h.ListCandidates)
	candidates.Get("/:id", authMiddleware.RequireScope(auth.ScopeCandidatesRead), h.GetCandidateByID)
	candidates.Put("/:id", authMiddleware.RequireScope(auth.ScopeCandidatesWrite), h.UpdateCandidate)
	candidates.Delete("/:id", authMiddleware.RequireScope(auth.ScopeCandidatesDelete), h.DeleteCandidate)
	candidates.Post("/:id/archive", authMiddleware.RequireScope(auth.ScopeCandidatesWrite), h.ArchiveCandidate)
	candidates.Post("/:id/unarchive", authMiddleware.RequireScope(auth.ScopeCandidatesWrite), h.UnarchiveCandidate)
}

// ListCandidates retrieves all candidates with pagination
// GET /api/v1/candidates
func (h *Handlers) ListCandidates(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	candidates, err := h.service.ListCandidates(c.Context(), pagination)
	if err != nil {
		return err
	}
	return c.JSON(candidates)
}

// GetCandidateByID retrieves a candidate by ID
// GET /api/v1/candidates/:id
func (h *Handlers) GetCandidateByID(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID == "" {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	resp, err := h.service.GetCandidateByID(c.Context(), candidateID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateCandidate applies a partial update to contact fields
// PUT /api/v1/candidates/:id
func (h *Handlers) UpdateCandidate(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if candidateID == "" {
		return candidate.ErrCandidateNotFound().WithDetail("id", "missing or empty")
	}

	var req candidate.UpdateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidCandidateData().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateCandidate(c.Context(), candidateID, req)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// ArchiveCandidate archives a candidate account
// POST /api/v1/candidates/:id/archive
func (h *Handlers) ArchiveCandidate(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if err := h.service.ArchiveCandidate(c.Context(), candidateID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UnarchiveCandidate restores an archived candidate account
// POST /api/v1/candidates/:id/unarchive
func (h *Handlers) UnarchiveCandidate(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if err := h.service.UnarchiveCandidate(c.Context(), candidateID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteCandidate removes a candidate account
// DELETE /api/v1/candidates/:id
func (h *Handlers) DeleteCandidate(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("id"))
	if err := h.service.DeleteCandidate(c.Context(), candidateID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

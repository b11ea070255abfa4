package applicationapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hotgigs/talent/pkg/iam/auth"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/application"
	"github.com/hotgigs/talent/recruitment/application/applicationsrv"
)

type ApplicationHandlers struct {
	service *applicationsrv.ApplicationService
}

func NewApplicationHandlers(service *applicationsrv.ApplicationService) *ApplicationHandlers {
	return &ApplicationHandlers{service: service}
}

func (h *ApplicationHandlers) RegisterRoutes(app *fiber.App, authMiddleware *auth.UnifiedAuthMiddleware) {
	applications := app.Group("/api/v1/applications", authMiddleware.Authenticate())

	applications.Post("/", authMiddleware.RequireScope(auth.ScopeApplicationsWrite), h.SubmitApplication)
	applications.Get("/", authMiddleware.RequireScope(auth.ScopeApplicationsRead), h.ListApplications)
	applications.Get("/reviewer/:reviewer_id", authMiddleware.RequireScope(auth.ScopeApplicationsReview), h.ListByReviewer)
	applications.Get("/stats/:job_id", authMiddleware.RequireScope(auth.ScopeApplicationsRead), h.GetJobStats)
	applications.Get("/:id", authMiddleware.RequireScope(auth.ScopeApplicationsRead), h.GetApplication)
	applications.Delete("/:id", authMiddleware.RequireScope(auth.ScopeApplicationsDelete), h.DeleteApplication)

	applications.Put("/:id/status", authMiddleware.RequireScope(auth.ScopeApplicationsReview), h.UpdateStatus)
	applications.Post("/:id/withdraw", authMiddleware.RequireScope(auth.ScopeApplicationsWrite), h.WithdrawApplication)
	applications.Put("/:id/reviewer", authMiddleware.RequireScope(auth.ScopeApplicationsAssign), h.AssignReviewer)
	applications.Put("/:id/notes", authMiddleware.RequireScope(auth.ScopeApplicationsReview), h.SetRecruiterNotes)
	applications.Post("/:id/rescore", authMiddleware.RequireScope(auth.ScopeApplicationsReview), h.RescoreApplication)
}

// ============================================================================
// Submission Handlers
// ============================================================================

// SubmitApplication applies a candidate to a job
// POST /api/v1/applications
func (h *ApplicationHandlers) SubmitApplication(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	var req application.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	req.TenantID = authCtx.TenantID
	if req.CandidateID.IsEmpty() && authCtx.UserID != nil {
		req.CandidateID = kernel.CandidateID(authCtx.UserID.String())
	}
	if req.JobID.IsEmpty() || req.CandidateID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id and candidate_id are required",
		})
	}

	response, err := h.service.SubmitApplication(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// ============================================================================
// Query Handlers
// ============================================================================

// GetApplication retrieves an application by ID
// GET /api/v1/applications/:id
func (h *ApplicationHandlers) GetApplication(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid application ID",
		})
	}

	response, err := h.service.GetApplication(c.Context(), applicationID)
	if err != nil {
		return err
	}

	if response.TenantID != authCtx.TenantID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	return c.JSON(response)
}

// ListApplications lists applications with optional filters
// GET /api/v1/applications?job_id=&candidate_id=&status=&page=1&page_size=20
func (h *ApplicationHandlers) ListApplications(c *fiber.Ctx) error {
	req := application.ListApplicationsRequest{
		Pagination: kernel.PaginationOptions{
			Page:     c.QueryInt("page", 1),
			PageSize: c.QueryInt("page_size", 20),
		},
	}

	if jobID := c.Query("job_id"); jobID != "" {
		id := kernel.JobID(jobID)
		req.JobID = &id
	}
	if candidateID := c.Query("candidate_id"); candidateID != "" {
		id := kernel.CandidateID(candidateID)
		req.CandidateID = &id
	}
	if status := c.Query("status"); status != "" {
		s := application.ApplicationStatus(status)
		req.Status = &s
	}

	response, err := h.service.ListApplications(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// ListByReviewer lists applications assigned to a reviewer
// GET /api/v1/applications/reviewer/:reviewer_id
func (h *ApplicationHandlers) ListByReviewer(c *fiber.Ctx) error {
	reviewerID := kernel.UserID(c.Params("reviewer_id"))
	if reviewerID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid reviewer ID",
		})
	}

	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	response, err := h.service.ListByReviewer(c.Context(), reviewerID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// GetJobStats returns pipeline counts for a job
// GET /api/v1/applications/stats/:job_id
func (h *ApplicationHandlers) GetJobStats(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("job_id"))
	if jobID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job ID",
		})
	}

	stats, err := h.service.GetJobStats(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// ============================================================================
// Pipeline Handlers
// ============================================================================

// UpdateStatus moves an application along the review pipeline
// PUT /api/v1/applications/:id/status
func (h *ApplicationHandlers) UpdateStatus(c *fiber.Ctx) error {
	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid application ID",
		})
	}

	var req application.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	response, err := h.service.UpdateStatus(c.Context(), applicationID, req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// WithdrawApplication withdraws the caller's own application
// POST /api/v1/applications/:id/withdraw
func (h *ApplicationHandlers) WithdrawApplication(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok || authCtx.UserID == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid application ID",
		})
	}

	candidateID := kernel.CandidateID(authCtx.UserID.String())
	if err := h.service.WithdrawApplication(c.Context(), applicationID, candidateID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":        "application withdrawn",
		"application_id": applicationID,
	})
}

// AssignReviewer assigns a reviewer to an application
// PUT /api/v1/applications/:id/reviewer
func (h *ApplicationHandlers) AssignReviewer(c *fiber.Ctx) error {
	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid application ID",
		})
	}

	var req application.AssignReviewerRequest
	if err := c.BodyParser(&req); err != nil || req.ReviewerID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "reviewer_id is required",
		})
	}

	response, err := h.service.AssignReviewer(c.Context(), applicationID, req.ReviewerID)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// SetRecruiterNotes sets recruiter notes on an application
// PUT /api/v1/applications/:id/notes
func (h *ApplicationHandlers) SetRecruiterNotes(c *fiber.Ctx) error {
	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid application ID",
		})
	}

	var req application.RecruiterNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	response, err := h.service.SetRecruiterNotes(c.Context(), applicationID, req.Notes)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// RescoreApplication recomputes the match for an application
// POST /api/v1/applications/:id/rescore
func (h *ApplicationHandlers) RescoreApplication(c *fiber.Ctx) error {
	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid application ID",
		})
	}

	response, err := h.service.RescoreApplication(c.Context(), applicationID)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// DeleteApplication deletes an application
// DELETE /api/v1/applications/:id
func (h *ApplicationHandlers) DeleteApplication(c *fiber.Ctx) error {
	applicationID := kernel.ApplicationID(c.Params("id"))
	if applicationID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid application ID",
		})
	}

	if err := h.service.DeleteApplication(c.Context(), applicationID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

package jobapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hotgigs/talent/pkg/iam/auth"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/job"
	"github.com/hotgigs/talent/recruitment/job/jobsrv"
)

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	service *jobsrv.JobService
}

// NewHandlers creates a new job handlers instance
func NewHandlers(service *jobsrv.JobService) *Handlers {
	return &Handlers{service: service}
}

func (h *Handlers) RegisterRoutes(app *fiber.App, authMiddleware *auth.UnifiedAuthMiddleware) {
	jobs := app.Group("/api/v1/jobs", authMiddleware.Authenticate())

	jobs.Post("/", authMiddleware.RequireScope(auth.ScopeJobsWrite), h.CreateJob)
	jobs.Get("/", authMiddleware.RequireScope(auth.ScopeJobsRead), h.ListJobs)
	jobs.Get("/active", authMiddleware.RequireScope(auth.ScopeJobsRead), h.ListActiveJobs)
	jobs.Post("/search", authMiddleware.RequireScope(auth.ScopeJobsRead), h.SearchJobs)
	jobs.Get("/by-user/:userId", authMiddleware.RequireScope(auth.ScopeJobsRead), h.ListJobsByUser)
	jobs.Get("/:id", authMiddleware.RequireScope(auth.ScopeJobsRead), h.GetJobByID)
	jobs.Put("/:id", authMiddleware.RequireScope(auth.ScopeJobsWrite), h.UpdateJob)
	jobs.Delete("/:id", authMiddleware.RequireScope(auth.ScopeJobsDelete), h.DeleteJob)
	jobs.Post("/:id/publish", authMiddleware.RequireScope(auth.ScopeJobsPublish), h.PublishJob)
	jobs.Post("/:id/close", authMiddleware.RequireScope(auth.ScopeJobsPublish), h.CloseJob)
}

// CreateJob creates a new job posting
// POST /api/v1/jobs
func (h *Handlers) CreateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	var req job.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJobData().WithDetail("parse_error", err.Error())
	}
	req.PostedBy = *authContext.UserID

	newJob, err := h.service.CreateJob(c.Context(), req, authContext.TenantID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(newJob)
}

// GetJobByID retrieves a job by ID
// GET /api/v1/jobs/:id
func (h *Handlers) GetJobByID(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	jobResp, err := h.service.GetJobByID(c.Context(), jobID)
	if err != nil {
		return err
	}
	return c.JSON(jobResp)
}

// ListJobs retrieves all jobs with pagination
// GET /api/v1/jobs
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	jobs, err := h.service.ListJobs(c.Context(), parsePaginationOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(jobs)
}

// ListActiveJobs retrieves only published jobs
// GET /api/v1/jobs/active
func (h *Handlers) ListActiveJobs(c *fiber.Ctx) error {
	jobs, err := h.service.ListActiveJobs(c.Context(), parsePaginationOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(jobs)
}

// ListJobsByUser retrieves jobs posted by a specific user
// GET /api/v1/jobs/by-user/:userId
func (h *Handlers) ListJobsByUser(c *fiber.Ctx) error {
	userID := kernel.UserID(c.Params("userId"))
	if userID == "" {
		return job.ErrJobNotFound().WithDetail("user_id", "missing or empty")
	}

	jobs, err := h.service.ListJobsByUser(c.Context(), userID, parsePaginationOptions(c))
	if err != nil {
		return err
	}
	return c.JSON(jobs)
}

// SearchJobs searches jobs by free text and filters
// POST /api/v1/jobs/search
func (h *Handlers) SearchJobs(c *fiber.Ctx) error {
	var req job.SearchJobsRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJobData().WithDetail("parse_error", err.Error())
	}

	jobs, err := h.service.SearchJobs(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(jobs)
}

// UpdateJob applies a partial update to a job
// PUT /api/v1/jobs/:id
func (h *Handlers) UpdateJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	jobID := kernel.JobID(c.Params("id"))
	if jobID == "" {
		return job.ErrJobNotFound().WithDetail("id", "missing or empty")
	}

	var req job.UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidJobData().WithDetail("parse_error", err.Error())
	}

	updated, err := h.service.UpdateJob(c.Context(), jobID, req, *authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}

// PublishJob makes a draft job visible
// POST /api/v1/jobs/:id/publish
func (h *Handlers) PublishJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	jobID := kernel.JobID(c.Params("id"))
	published, err := h.service.PublishJob(c.Context(), jobID, *authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(published)
}

// CloseJob stops a job from accepting applications
// POST /api/v1/jobs/:id/close
func (h *Handlers) CloseJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	jobID := kernel.JobID(c.Params("id"))
	closed, err := h.service.CloseJob(c.Context(), jobID, *authContext.UserID)
	if err != nil {
		return err
	}
	return c.JSON(closed)
}

// DeleteJob removes a job without applications
// DELETE /api/v1/jobs/:id
func (h *Handlers) DeleteJob(c *fiber.Ctx) error {
	authContext, ok := auth.GetAuthContext(c)
	if !ok {
		return job.ErrInsufficientPermissions()
	}

	jobID := kernel.JobID(c.Params("id"))
	if err := h.service.DeleteJob(c.Context(), jobID, *authContext.UserID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parsePaginationOptions extracts pagination options from query parameters
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	return kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}
}

package resumeapi

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hotgigs/talent/pkg/fsx"
	"github.com/hotgigs/talent/pkg/iam/auth"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/resume"
	"github.com/hotgigs/talent/recruitment/resume/resumesrv"
)

type ResumeHandlers struct {
	service    *resumesrv.Service
	fileSystem fsx.FileSystem
}

func NewResumeHandlers(service *resumesrv.Service, fileSystem fsx.FileSystem) *ResumeHandlers {
	return &ResumeHandlers{
		service:    service,
		fileSystem: fileSystem,
	}
}

func (h *ResumeHandlers) RegisterRoutes(app *fiber.App, authMiddleware *auth.UnifiedAuthMiddleware) {
	resumes := app.Group("/api/v1/resumes", authMiddleware.Authenticate())

	// Parsing
	resumes.Post("/parse", authMiddleware.RequireScope(auth.ScopeResumesParse), h.ParseResume)
	resumes.Post("/parse/sync", authMiddleware.RequireScope(auth.ScopeResumesParse), h.ParseResumeSync)

	// Job management
	resumes.Get("/jobs/stats", authMiddleware.RequireScope(auth.ScopeResumesRead), h.GetJobStats)
	resumes.Get("/jobs/:job_id", authMiddleware.RequireScope(auth.ScopeResumesRead), h.GetJobStatus)
	resumes.Get("/jobs", authMiddleware.RequireScope(auth.ScopeResumesRead), h.ListJobs)
	resumes.Post("/jobs/:job_id/cancel", authMiddleware.RequireScope(auth.ScopeResumesWrite), h.CancelJob)
	resumes.Post("/jobs/:job_id/retry", authMiddleware.RequireScope(auth.ScopeResumesParse), h.RetryJob)

	// Search
	resumes.Post("/search", authMiddleware.RequireScope(auth.ScopeResumesRead), h.SearchResumes)

	// Resume CRUD
	resumes.Get("/", authMiddleware.RequireScope(auth.ScopeResumesRead), h.ListResumes)
	resumes.Get("/:id", authMiddleware.RequireScope(auth.ScopeResumesRead), h.GetResume)
	resumes.Delete("/:id", authMiddleware.RequireScope(auth.ScopeResumesDelete), h.DeleteResume)

	// Resume management
	resumes.Put("/:id/default", authMiddleware.RequireScope(auth.ScopeResumesWrite), h.SetDefaultResume)
	resumes.Put("/:id/activate", authMiddleware.RequireScope(auth.ScopeResumesWrite), h.ToggleActive)
	resumes.Put("/:id/embedding", authMiddleware.RequireScope(auth.ScopeResumesWrite), h.RefreshEmbedding)
}

// ============================================================================
// Parsing Handlers
// ============================================================================

// ParseResume uploads a resume file and queues it for async processing
// POST /api/v1/resumes/parse
func (h *ResumeHandlers) ParseResume(c *fiber.Ctx) error {
	req, cleanup, err := h.buildParseRequest(c)
	if err != nil {
		return err
	}

	jobResponse, err := h.service.ParseResumeAsync(c.Context(), *req)
	if err != nil {
		cleanup()
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":    "Resume upload successful, processing started",
		"job":        jobResponse,
		"status_url": fmt.Sprintf("/api/v1/resumes/jobs/%s", jobResponse.JobID),
	})
}

// ParseResumeSync uploads and parses a resume in the same request
// POST /api/v1/resumes/parse/sync
func (h *ResumeHandlers) ParseResumeSync(c *fiber.Ctx) error {
	req, cleanup, err := h.buildParseRequest(c)
	if err != nil {
		return err
	}

	response, err := h.service.ParseAndCreateResume(c.Context(), *req)
	if err != nil {
		cleanup()
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// buildParseRequest validates the multipart upload, stores the file, and
// assembles the parse request. The returned cleanup deletes the stored
// file when later steps fail.
func (h *ResumeHandlers) buildParseRequest(c *fiber.Ctx) (*resume.ParseResumeRequest, func(), error) {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return nil, nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return nil, nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	if file.Size > int64(resumesrv.MaxUploadSize) {
		return nil, nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "file too large",
			"max_size": "10MB",
			"size":     file.Size,
		})
	}

	fileType := determineFileType(file.Filename, file.Header.Get("Content-Type"))
	if fileType == "" {
		return nil, nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":           "unsupported file type",
			"supported_types": []string{"pdf", "doc", "docx", "txt", "rtf", "jpg", "jpeg", "png", "gif"},
			"detected_type":   file.Header.Get("Content-Type"),
			"file_extension":  filepath.Ext(file.Filename),
		})
	}

	candidateID := h.resolveCandidateID(c, authCtx)
	if candidateID.IsEmpty() {
		return nil, nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_id is required",
		})
	}

	title := c.FormValue("title")
	if title == "" {
		title = file.Filename
	}

	uploadedFile, err := file.Open()
	if err != nil {
		return nil, nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer uploadedFile.Close()

	// Storage layout: resumes/{tenant_id}/{year}/{month}/{uuid}.{ext}
	now := time.Now()
	extension := filepath.Ext(file.Filename)
	if extension == "" {
		extension = "." + fileType
	}

	filePath := h.fileSystem.Join(
		"resumes",
		authCtx.TenantID.String(),
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		uuid.New().String()+extension,
	)

	if err := h.fileSystem.WriteFileStream(c.Context(), filePath, uploadedFile); err != nil {
		return nil, nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "failed to upload file to storage",
			"details": err.Error(),
		})
	}

	req := &resume.ParseResumeRequest{
		TenantID:    authCtx.TenantID,
		CandidateID: candidateID,
		FilePath:    filePath,
		FileName:    file.Filename,
		FileType:    fileType,
		Title:       title,
		Provider:    c.FormValue("provider"),
		IsDefault:   c.FormValue("is_default", "false") == "true",
	}
	cleanup := func() {
		_ = h.fileSystem.DeleteFile(c.Context(), filePath)
	}
	return req, cleanup, nil
}

// resolveCandidateID takes an explicit candidate_id form value when
// present, otherwise the authenticated user's own ID
func (h *ResumeHandlers) resolveCandidateID(c *fiber.Ctx, authCtx *auth.AuthContext) kernel.CandidateID {
	if formValue := c.FormValue("candidate_id"); formValue != "" {
		return kernel.CandidateID(formValue)
	}
	if authCtx.UserID != nil {
		return kernel.CandidateID(authCtx.UserID.String())
	}
	return kernel.CandidateID("")
}

// ============================================================================
// Resume CRUD Handlers
// ============================================================================

// GetResume retrieves a resume by ID
// GET /api/v1/resumes/:id
func (h *ResumeHandlers) GetResume(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	resumeID := kernel.ResumeID(c.Params("id"))
	if resumeID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid resume ID",
		})
	}

	response, err := h.service.GetResume(c.Context(), resumeID)
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

// DeleteResume deletes a resume and its stored file
// DELETE /api/v1/resumes/:id
func (h *ResumeHandlers) DeleteResume(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	resumeID := kernel.ResumeID(c.Params("id"))
	if resumeID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid resume ID",
		})
	}

	existing, err := h.service.GetResume(c.Context(), resumeID)
	if err != nil {
		return err
	}

	if existing.TenantID != authCtx.TenantID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	if err := h.service.DeleteResume(c.Context(), resumeID); err != nil {
		return err
	}

	if existing.FileURL != "" {
		_ = h.fileSystem.DeleteFile(c.Context(), existing.FileURL)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

// ListResumes lists resumes for a candidate
// GET /api/v1/resumes?candidate_id=xxx&page=1&page_size=20&only_active=false
func (h *ResumeHandlers) ListResumes(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	candidateID := kernel.CandidateID(c.Query("candidate_id"))
	if candidateID.IsEmpty() && authCtx.UserID != nil {
		candidateID = kernel.CandidateID(authCtx.UserID.String())
	}
	if candidateID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_id is required",
		})
	}

	req := resume.ListResumesRequest{
		CandidateID: candidateID,
		OnlyActive:  c.QueryBool("only_active", false),
		Pagination: kernel.PaginationOptions{
			Page:     c.QueryInt("page", 1),
			PageSize: c.QueryInt("page_size", 20),
		},
	}

	response, err := h.service.ListResumes(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// ============================================================================
// Job Management Handlers
// ============================================================================

// GetJobStatus retrieves the status of a resume processing job
// GET /api/v1/resumes/jobs/:job_id
func (h *ResumeHandlers) GetJobStatus(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	jobID := kernel.JobID(c.Params("job_id"))
	if jobID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job ID",
		})
	}

	jobStatus, err := h.service.GetJobStatus(c.Context(), jobID)
	if err != nil {
		return err
	}

	if jobStatus.TenantID != authCtx.TenantID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	return c.JSON(jobStatus)
}

// ListJobs lists processing jobs for the authenticated tenant
// GET /api/v1/resumes/jobs?page=1&page_size=20
func (h *ResumeHandlers) ListJobs(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	jobs, err := h.service.ListJobsByTenant(c.Context(), authCtx.TenantID, pagination)
	if err != nil {
		return err
	}

	return c.JSON(jobs)
}

// GetJobStats retrieves job statistics for the tenant
// GET /api/v1/resumes/jobs/stats
func (h *ResumeHandlers) GetJobStats(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	stats, err := h.service.GetJobStats(c.Context(), authCtx.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// CancelJob cancels a pending or processing job
// POST /api/v1/resumes/jobs/:job_id/cancel
func (h *ResumeHandlers) CancelJob(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	jobID := kernel.JobID(c.Params("job_id"))
	if jobID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job ID",
		})
	}

	if err := h.service.CancelJob(c.Context(), jobID, authCtx.TenantID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "job cancelled successfully",
		"job_id":  jobID,
	})
}

// RetryJob retries a failed job
// POST /api/v1/resumes/jobs/:job_id/retry
func (h *ResumeHandlers) RetryJob(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	jobID := kernel.JobID(c.Params("job_id"))
	if jobID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job ID",
		})
	}

	jobStatus, err := h.service.RetryFailedJob(c.Context(), jobID, authCtx.TenantID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "job retried successfully",
		"job":     jobStatus,
	})
}

// ============================================================================
// Search Handlers
// ============================================================================

// SearchResumes performs semantic search over resume embeddings
// POST /api/v1/resumes/search
func (h *ResumeHandlers) SearchResumes(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	var req resume.SearchResumesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	// Search stays within the caller's tenant
	req.TenantID = &authCtx.TenantID

	response, err := h.service.SearchResumes(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// ============================================================================
// Resume Management Handlers
// ============================================================================

// SetDefaultResume sets a resume as the candidate's default
// PUT /api/v1/resumes/:id/default
func (h *ResumeHandlers) SetDefaultResume(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	resumeID := kernel.ResumeID(c.Params("id"))
	if resumeID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid resume ID",
		})
	}

	candidateID := h.resolveCandidateID(c, authCtx)
	if candidateID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_id is required",
		})
	}

	if err := h.service.SetDefaultResume(c.Context(), candidateID, resumeID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":   "resume set as default",
		"resume_id": resumeID,
	})
}

// ToggleActive activates or deactivates a resume
// PUT /api/v1/resumes/:id/activate
// Body: {"is_active": true}
func (h *ResumeHandlers) ToggleActive(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	resumeID := kernel.ResumeID(c.Params("id"))
	if resumeID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid resume ID",
		})
	}

	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	existing, err := h.service.GetResume(c.Context(), resumeID)
	if err != nil {
		return err
	}

	if existing.TenantID != authCtx.TenantID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	if err := h.service.ToggleActive(c.Context(), resumeID, req.IsActive); err != nil {
		return err
	}

	status := "deactivated"
	if req.IsActive {
		status = "activated"
	}

	return c.JSON(fiber.Map{
		"message":   "resume " + status,
		"resume_id": resumeID,
		"is_active": req.IsActive,
	})
}

// RefreshEmbedding regenerates the embedding for a resume
// PUT /api/v1/resumes/:id/embedding
func (h *ResumeHandlers) RefreshEmbedding(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	resumeID := kernel.ResumeID(c.Params("id"))
	if resumeID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid resume ID",
		})
	}

	existing, err := h.service.GetResume(c.Context(), resumeID)
	if err != nil {
		return err
	}

	if existing.TenantID != authCtx.TenantID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied",
		})
	}

	if err := h.service.RefreshEmbedding(c.Context(), resumeID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":   "embedding refreshed",
		"resume_id": resumeID,
	})
}

// ============================================================================
// Helper Functions
// ============================================================================

// determineFileType resolves a supported file type from the content type
// header or the file extension
func determineFileType(filename, contentType string) string {
	switch contentType {
	case "application/pdf":
		return "pdf"
	case "application/msword":
		return "doc"
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return "docx"
	case "text/plain":
		return "txt"
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	}

	ext := filepath.Ext(filename)
	if ext == "" {
		return ""
	}

	switch ext[1:] {
	case "pdf", "doc", "docx", "txt", "rtf", "png", "gif":
		return ext[1:]
	case "jpg", "jpeg":
		return "jpg"
	default:
		return ""
	}
}

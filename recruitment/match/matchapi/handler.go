package matchapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hotgigs/talent/pkg/iam/auth"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/match"
	"github.com/hotgigs/talent/recruitment/match/matchsrv"
)

type MatchHandlers struct {
	service *matchsrv.MatchService
}

func NewMatchHandlers(service *matchsrv.MatchService) *MatchHandlers {
	return &MatchHandlers{service: service}
}

func (h *MatchHandlers) RegisterRoutes(app *fiber.App, authMiddleware *auth.UnifiedAuthMiddleware) {
	matching := app.Group("/api/v1/matching", authMiddleware.Authenticate())

	matching.Post("/find-jobs", authMiddleware.RequireScope(auth.ScopeMatchingRun), h.FindJobs)
	matching.Post("/find-candidates", authMiddleware.RequireScope(auth.ScopeMatchingRun), h.FindCandidates)
	matching.Post("/match-score", authMiddleware.RequireScope(auth.ScopeMatchingRun), h.MatchScore)
	matching.Post("/refit", authMiddleware.RequireScope(auth.ScopeMatchingRun), h.Refit)
	matching.Get("/analytics/:candidate_id", authMiddleware.RequireScope(auth.ScopeMatchingRead), h.CandidateAnalytics)
}

// FindJobs ranks active jobs for a candidate
// POST /api/v1/matching/find-jobs
func (h *MatchHandlers) FindJobs(c *fiber.Ctx) error {
	authCtx, ok := auth.GetAuthContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	var req match.FindJobsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.CandidateID.IsEmpty() && authCtx.UserID != nil {
		req.CandidateID = kernel.CandidateID(authCtx.UserID.String())
	}
	if req.CandidateID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_id is required",
		})
	}

	response, err := h.service.FindJobsForCandidate(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// FindCandidates ranks candidates for a job
// POST /api/v1/matching/find-candidates
func (h *MatchHandlers) FindCandidates(c *fiber.Ctx) error {
	var req match.FindCandidatesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.JobID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_id is required",
		})
	}

	response, err := h.service.FindCandidatesForJob(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// MatchScore computes the full match for one candidate/job pair
// POST /api/v1/matching/match-score
func (h *MatchHandlers) MatchScore(c *fiber.Ctx) error {
	var req match.ScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if req.CandidateID.IsEmpty() || req.JobID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "candidate_id and job_id are required",
		})
	}

	response, err := h.service.Score(c.Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// Refit rebuilds the text-similarity model over the current corpus
// POST /api/v1/matching/refit
func (h *MatchHandlers) Refit(c *fiber.Ctx) error {
	response, err := h.service.Refit(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// CandidateAnalytics reports profile and pipeline facts for a candidate
// GET /api/v1/matching/analytics/:candidate_id
func (h *MatchHandlers) CandidateAnalytics(c *fiber.Ctx) error {
	candidateID := kernel.CandidateID(c.Params("candidate_id"))
	if candidateID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate ID",
		})
	}

	response, err := h.service.GetCandidateAnalytics(c.Context(), candidateID)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

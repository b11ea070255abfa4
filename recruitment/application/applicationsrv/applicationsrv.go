package applicationsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/pkg/logx"
	"github.com/hotgigs/talent/recruitment/application"
	"github.com/hotgigs/talent/recruitment/job"
	"github.com/hotgigs/talent/recruitment/resume"
)

// MatchScorer computes the candidate/job match recorded on an
// application at submission time.
type MatchScorer interface {
	ScorePair(ctx context.Context, candidateID kernel.CandidateID, jobID kernel.JobID) (*matching.MatchResult, error)
}

type ApplicationService struct {
	repo    application.Repository
	jobs    job.Repository
	resumes resume.Repository
	scorer  MatchScorer
}

// NewApplicationService creates a new application service. The scorer
// may be nil, in which case applications are stored unscored.
func NewApplicationService(
	repo application.Repository,
	jobs job.Repository,
	resumes resume.Repository,
	scorer MatchScorer,
) *ApplicationService {
	return &ApplicationService{
		repo:    repo,
		jobs:    jobs,
		resumes: resumes,
		scorer:  scorer,
	}
}

// ============================================================================
// Submission
// ============================================================================

// SubmitApplication applies a candidate to a job
func (s *ApplicationService) SubmitApplication(ctx context.Context, req application.SubmitApplicationRequest) (*application.ApplicationResponse, error) {
	posting, err := s.jobs.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}
	if !posting.IsOpen() {
		return nil, application.ErrJobNotOpen().
			WithDetail("job_id", req.JobID).
			WithDetail("job_status", posting.Status)
	}

	exists, err := s.repo.ExistsByJobAndCandidate(ctx, req.JobID, req.CandidateID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, application.ErrApplicationAlreadyExists().
			WithDetail("job_id", req.JobID).
			WithDetail("candidate_id", req.CandidateID)
	}

	resumeID, err := s.resolveResume(ctx, req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	app := &application.Application{
		ID:          kernel.NewApplicationID(uuid.NewString()),
		TenantID:    req.TenantID,
		JobID:       req.JobID,
		CandidateID: req.CandidateID,
		ResumeID:    resumeID,
		CoverLetter: req.CoverLetter,
		Status:      application.ApplicationStatusSubmitted,
		SubmittedAt: now,
		UpdatedAt:   now,
	}

	s.scoreApplication(ctx, app)

	if err := s.repo.Create(ctx, app); err != nil {
		return nil, err
	}

	logx.Infof("Application %s submitted: candidate %s -> job %s", app.ID, req.CandidateID, req.JobID)
	return application.ToApplicationResponse(app), nil
}

// resolveResume validates an explicit resume choice or falls back to
// the candidate's default resume. Candidates without any resume apply
// with a nil ResumeID.
func (s *ApplicationService) resolveResume(ctx context.Context, req application.SubmitApplicationRequest) (*kernel.ResumeID, error) {
	if req.ResumeID != nil {
		r, err := s.resumes.GetByID(ctx, *req.ResumeID)
		if err != nil {
			return nil, application.ErrResumeNotFound().
				WithDetail("resume_id", *req.ResumeID)
		}
		if r.CandidateID != req.CandidateID {
			return nil, application.ErrResumeMismatch().
				WithDetail("resume_id", *req.ResumeID).
				WithDetail("candidate_id", req.CandidateID)
		}
		return req.ResumeID, nil
	}

	defaultResume, err := s.resumes.GetDefaultByCandidateID(ctx, req.CandidateID)
	if err != nil {
		return nil, nil
	}
	id := defaultResume.ID
	return &id, nil
}

// scoreApplication computes the match for a new application. Scoring is
// best effort; a failure leaves the application unscored.
func (s *ApplicationService) scoreApplication(ctx context.Context, app *application.Application) {
	if s.scorer == nil {
		return
	}

	result, err := s.scorer.ScorePair(ctx, app.CandidateID, app.JobID)
	if err != nil {
		logx.Warnf("Match scoring failed for application %s: %v", app.ID, err)
		return
	}
	app.SetMatchResult(result)
}

// ============================================================================
// Queries
// ============================================================================

// GetApplication retrieves an application by ID
func (s *ApplicationService) GetApplication(ctx context.Context, id kernel.ApplicationID) (*application.ApplicationResponse, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return application.ToApplicationResponse(app), nil
}

// ListApplications lists applications matching the request filters
func (s *ApplicationService) ListApplications(ctx context.Context, req application.ListApplicationsRequest) (*application.PaginatedApplicationsResponse, error) {
	if req.Status != nil && !isValidStatus(*req.Status) {
		return nil, application.ErrInvalidStatus().
			WithDetail("status", *req.Status)
	}

	paginated, err := s.repo.List(ctx, req)
	if err != nil {
		return nil, err
	}

	items := make([]application.ApplicationResponse, len(paginated.Items))
	for i := range paginated.Items {
		items[i] = *application.ToApplicationResponse(&paginated.Items[i])
	}

	return &application.PaginatedApplicationsResponse{
		Items: items,
		Page:  paginated.Page,
	}, nil
}

// ListByReviewer lists applications assigned to a reviewer
func (s *ApplicationService) ListByReviewer(ctx context.Context, reviewerID kernel.UserID, pagination kernel.PaginationOptions) (*application.PaginatedApplicationsResponse, error) {
	paginated, err := s.repo.ListByReviewer(ctx, reviewerID, pagination)
	if err != nil {
		return nil, err
	}

	items := make([]application.ApplicationResponse, len(paginated.Items))
	for i := range paginated.Items {
		items[i] = *application.ToApplicationResponse(&paginated.Items[i])
	}

	return &application.PaginatedApplicationsResponse{
		Items: items,
		Page:  paginated.Page,
	}, nil
}

// GetJobStats returns per-status application counts for a job
func (s *ApplicationService) GetJobStats(ctx context.Context, jobID kernel.JobID) (*application.ApplicationStatsResponse, error) {
	total, err := s.repo.CountByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	stats := &application.ApplicationStatsResponse{
		JobID: jobID,
		Total: int(total),
	}

	counts := map[application.ApplicationStatus]*int{
		application.ApplicationStatusSubmitted:   &stats.Submitted,
		application.ApplicationStatusUnderReview: &stats.UnderReview,
		application.ApplicationStatusInterview:   &stats.Interview,
		application.ApplicationStatusHired:       &stats.Hired,
		application.ApplicationStatusRejected:    &stats.Rejected,
		application.ApplicationStatusWithdrawn:   &stats.Withdrawn,
	}
	for status, target := range counts {
		count, err := s.repo.CountByJobIDAndStatus(ctx, jobID, status)
		if err != nil {
			return nil, err
		}
		*target = int(count)
	}

	return stats, nil
}

// ============================================================================
// Pipeline Operations
// ============================================================================

// UpdateStatus moves an application along the review pipeline
func (s *ApplicationService) UpdateStatus(ctx context.Context, id kernel.ApplicationID, req application.UpdateStatusRequest) (*application.ApplicationResponse, error) {
	if !isValidStatus(req.Status) {
		return nil, application.ErrInvalidStatus().
			WithDetail("status", req.Status)
	}

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := app.UpdateStatus(req.Status); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, app); err != nil {
		return nil, err
	}

	logx.Infof("Application %s moved to %s", id, req.Status)
	return application.ToApplicationResponse(app), nil
}

// WithdrawApplication withdraws an application on the candidate's behalf
func (s *ApplicationService) WithdrawApplication(ctx context.Context, id kernel.ApplicationID, candidateID kernel.CandidateID) error {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if app.CandidateID != candidateID {
		return application.ErrInsufficientPermissions().
			WithDetail("application_id", id)
	}

	if err := app.Withdraw(); err != nil {
		return err
	}

	return s.repo.Update(ctx, id, app)
}

// AssignReviewer assigns a reviewer to an application
func (s *ApplicationService) AssignReviewer(ctx context.Context, id kernel.ApplicationID, reviewerID kernel.UserID) (*application.ApplicationResponse, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := app.AssignReviewer(reviewerID); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, app); err != nil {
		return nil, err
	}
	return application.ToApplicationResponse(app), nil
}

// SetRecruiterNotes sets the recruiter notes on an application
func (s *ApplicationService) SetRecruiterNotes(ctx context.Context, id kernel.ApplicationID, notes string) (*application.ApplicationResponse, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	app.AddRecruiterNotes(notes)

	if err := s.repo.Update(ctx, id, app); err != nil {
		return nil, err
	}
	return application.ToApplicationResponse(app), nil
}

// RescoreApplication recomputes the match for an existing application
func (s *ApplicationService) RescoreApplication(ctx context.Context, id kernel.ApplicationID) (*application.ApplicationResponse, error) {
	if s.scorer == nil {
		return nil, application.ErrScoringFailed().
			WithDetail("reason", "scoring is not configured")
	}

	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := s.scorer.ScorePair(ctx, app.CandidateID, app.JobID)
	if err != nil {
		return nil, application.ErrScoringFailed().
			WithDetail("application_id", id).
			WithDetails(map[string]any{"error": err.Error()})
	}

	app.SetMatchResult(result)
	if err := s.repo.Update(ctx, id, app); err != nil {
		return nil, err
	}
	return application.ToApplicationResponse(app), nil
}

// DeleteApplication deletes an application
func (s *ApplicationService) DeleteApplication(ctx context.Context, id kernel.ApplicationID) error {
	return s.repo.Delete(ctx, id)
}

func isValidStatus(status application.ApplicationStatus) bool {
	for _, s := range application.ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

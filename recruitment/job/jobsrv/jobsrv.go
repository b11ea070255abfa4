package jobsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/pkg/logx"
	"github.com/hotgigs/talent/recruitment/job"
)

// JobService handles job posting business logic
type JobService struct {
	repo job.Repository
}

// NewJobService creates a new job service
func NewJobService(repo job.Repository) *JobService {
	return &JobService{repo: repo}
}

// CreateJob creates a new job posting in draft status. Structured
// required skills are derived from the posting text when absent.
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest, tenantID kernel.TenantID) (*job.JobResponse, error) {
	if req.Title == "" || req.Description == "" {
		return nil, job.ErrInvalidJobData().
			WithDetail("title", req.Title).
			WithDetail("reason", "title and description are required")
	}

	now := time.Now()
	newJob := &job.Job{
		ID:                     kernel.NewJobID(uuid.NewString()),
		TenantID:               tenantID,
		Title:                  req.Title,
		Company:                req.Company,
		Location:               req.Location,
		Industry:               req.Industry,
		Description:            req.Description,
		Requirements:           req.Requirements,
		RequiredSkills:         req.RequiredSkills,
		RemoteOK:               req.RemoteOK,
		SalaryMin:              req.SalaryMin,
		SalaryMax:              req.SalaryMax,
		ExperienceRequirements: req.ExperienceRequirements,
		PostedBy:               req.PostedBy,
		Status:                 job.JobStatusDraft,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	newJob.EnsureRequiredSkills()

	if err := s.repo.Create(ctx, newJob); err != nil {
		return nil, job.ErrRegistry.NewWithCause(job.CodeJobAlreadyExists, err).
			WithDetail("title", req.Title)
	}

	logx.Infof("Created job %s (%s) with %d required skills", newJob.ID, newJob.Title, len(newJob.RequiredSkills))
	return job.ToJobResponse(newJob), nil
}

// GetJobByID retrieves a job by ID
func (s *JobService) GetJobByID(ctx context.Context, id kernel.JobID) (*job.JobResponse, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return job.ToJobResponse(j), nil
}

// UpdateJob applies a partial update to a job posting
func (s *JobService) UpdateJob(ctx context.Context, id kernel.JobID, req job.UpdateJobRequest, userID kernel.UserID) (*job.JobResponse, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.PostedBy != userID {
		return nil, job.ErrUnauthorizedUpdate().WithDetail("job_id", id)
	}

	j.UpdateDetails(req)
	j.EnsureRequiredSkills()

	if err := s.repo.Update(ctx, id, j); err != nil {
		return nil, err
	}
	return job.ToJobResponse(j), nil
}

// PublishJob makes a draft job visible to candidates
func (s *JobService) PublishJob(ctx context.Context, id kernel.JobID, userID kernel.UserID) (*job.JobResponse, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.PostedBy != userID {
		return nil, job.ErrUnauthorizedUpdate().WithDetail("job_id", id)
	}

	if err := j.Publish(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, j); err != nil {
		return nil, err
	}
	return job.ToJobResponse(j), nil
}

// CloseJob stops a job from accepting applications
func (s *JobService) CloseJob(ctx context.Context, id kernel.JobID, userID kernel.UserID) (*job.JobResponse, error) {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j.PostedBy != userID {
		return nil, job.ErrUnauthorizedUpdate().WithDetail("job_id", id)
	}

	if err := j.Close(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, j); err != nil {
		return nil, err
	}
	return job.ToJobResponse(j), nil
}

// DeleteJob removes a job that has no applications
func (s *JobService) DeleteJob(ctx context.Context, id kernel.JobID, userID kernel.UserID) error {
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if j.PostedBy != userID {
		return job.ErrUnauthorizedUpdate().WithDetail("job_id", id)
	}

	count, err := s.repo.CountApplications(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return job.ErrJobHasApplications().
			WithDetail("job_id", id).
			WithDetail("application_count", count)
	}

	return s.repo.Delete(ctx, id)
}

// ListJobs retrieves all jobs with pagination
func (s *JobService) ListJobs(ctx context.Context, pagination kernel.PaginationOptions) (*job.PaginatedJobsResponse, error) {
	paginated, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, err
	}
	return toPaginatedResponse(paginated), nil
}

// ListActiveJobs retrieves only published jobs
func (s *JobService) ListActiveJobs(ctx context.Context, pagination kernel.PaginationOptions) (*job.PaginatedJobsResponse, error) {
	paginated, err := s.repo.ListActive(ctx, pagination)
	if err != nil {
		return nil, err
	}
	return toPaginatedResponse(paginated), nil
}

// ListJobsByUser retrieves jobs posted by a user
func (s *JobService) ListJobsByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*job.PaginatedJobsResponse, error) {
	paginated, err := s.repo.ListByUserID(ctx, userID, pagination)
	if err != nil {
		return nil, err
	}
	return toPaginatedResponse(paginated), nil
}

// SearchJobs searches jobs by free text and filters
func (s *JobService) SearchJobs(ctx context.Context, req job.SearchJobsRequest) (*job.PaginatedJobsResponse, error) {
	paginated, err := s.repo.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	return toPaginatedResponse(paginated), nil
}

func toPaginatedResponse(paginated *kernel.Paginated[job.Job]) *job.PaginatedJobsResponse {
	items := make([]job.JobResponse, 0, len(paginated.Items))
	for i := range paginated.Items {
		items = append(items, *job.ToJobResponse(&paginated.Items[i]))
	}
	return &job.PaginatedJobsResponse{Items: items, Page: paginated.Page}
}

package resume

import (
	"context"
	"time"

	"github.com/hotgigs/talent/pkg/kernel"
)

type Repository interface {
	// Create creates a new resume
	Create(ctx context.Context, resume *Resume) error

	// Update updates an existing resume
	Update(ctx context.Context, id kernel.ResumeID, resume *Resume) error

	// GetByID retrieves a resume by ID
	GetByID(ctx context.Context, id kernel.ResumeID) (*Resume, error)

	// Delete deletes a resume
	Delete(ctx context.Context, id kernel.ResumeID) error

	// ListByCandidateID retrieves all resumes for a candidate
	ListByCandidateID(ctx context.Context, candidateID kernel.CandidateID) ([]*Resume, error)

	// GetDefaultByCandidateID retrieves the default resume for a candidate
	GetDefaultByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*Resume, error)

	// SetDefault sets a resume as the candidate's default (unsets others)
	SetDefault(ctx context.Context, id kernel.ResumeID, candidateID kernel.CandidateID) error

	// ToggleActive activates or deactivates a resume
	ToggleActive(ctx context.Context, id kernel.ResumeID, isActive bool) error

	// CountByCandidateID counts resumes for a candidate
	CountByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (int64, error)

	// List retrieves all resumes with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Resume], error)

	// SemanticSearch ranks resumes by vector similarity to the query
	// embedding
	SemanticSearch(ctx context.Context, queryEmbedding kernel.ResumeEmbedding, req SearchResumesRequest) ([]ResumeMatchResult, error)

	// UpdateEmbedding updates only the embedding for a resume
	UpdateEmbedding(ctx context.Context, id kernel.ResumeID, embedding kernel.ResumeEmbedding) error
}

type JobRepository interface {
	Create(ctx context.Context, job *ResumeProcessingJob) error
	Update(ctx context.Context, job *ResumeProcessingJob) error
	GetByID(ctx context.Context, jobID kernel.JobID) (*ResumeProcessingJob, error)
	GetByTenantID(ctx context.Context, tenantID kernel.TenantID, pagination kernel.PaginationOptions) (*kernel.Paginated[ResumeProcessingJob], error)

	// Update status helpers
	MarkAsProcessing(ctx context.Context, jobID kernel.JobID) error
	MarkAsCompleted(ctx context.Context, jobID kernel.JobID, resumeID kernel.ResumeID) error
	MarkAsFailed(ctx context.Context, jobID kernel.JobID, errorMsg string, errorDetails map[string]any) error
	UpdateProgress(ctx context.Context, jobID kernel.JobID, step ProcessingStep, percentage int) error
}

// JobQueue defines the interface for job queue operations
type JobQueue interface {
	// Enqueue adds a job to the queue
	Enqueue(ctx context.Context, jobID kernel.JobID, payload any) error

	// Dequeue gets a job from the queue (blocking with timeout)
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// EnqueueDelayed schedules a job for later processing (for retries)
	EnqueueDelayed(ctx context.Context, jobID kernel.JobID, payload any, delay time.Duration) error

	// MoveDelayedToReady moves delayed jobs that are ready to the main queue
	MoveDelayedToReady(ctx context.Context) (int, error)

	// GetQueueSize returns the number of jobs in the queue
	GetQueueSize(ctx context.Context) (int64, error)

	// GetDelayedQueueSize returns the number of delayed jobs
	GetDelayedQueueSize(ctx context.Context) (int64, error)

	// Clear removes all jobs from the queue (use with caution)
	Clear(ctx context.Context) error
}

package resumeinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/resume"
)

type PostgresJobRepository struct {
	db *sqlx.DB
}

func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type jobRow struct {
	ID          string         `db:"id"`
	TenantID    string         `db:"tenant_id"`
	CandidateID string         `db:"candidate_id"`
	ResumeID    sql.NullString `db:"resume_id"`

	Status   string `db:"status"`
	FilePath string `db:"file_path"`
	FileName string `db:"file_name"`
	FileType string `db:"file_type"`
	Title    string `db:"title"`

	AttemptCount int `db:"attempt_count"`
	MaxAttempts  int `db:"max_attempts"`

	ErrorMessage sql.NullString  `db:"error_message"`
	ErrorDetails json.RawMessage `db:"error_details"`

	CurrentStep        sql.NullString `db:"current_step"`
	ProgressPercentage int            `db:"progress_percentage"`

	CreatedAt   time.Time  `db:"created_at"`
	StartedAt   *time.Time `db:"started_at"`
	CompletedAt *time.Time `db:"completed_at"`
	FailedAt    *time.Time `db:"failed_at"`
	NextRetryAt *time.Time `db:"next_retry_at"`

	RequestPayload json.RawMessage `db:"request_payload"`
}

func (row *jobRow) toEntity() (*resume.ResumeProcessingJob, error) {
	job := &resume.ResumeProcessingJob{
		ID:                 kernel.JobID(row.ID),
		TenantID:           kernel.TenantID(row.TenantID),
		CandidateID:        kernel.CandidateID(row.CandidateID),
		Status:             resume.JobStatus(row.Status),
		FilePath:           row.FilePath,
		FileName:           row.FileName,
		FileType:           row.FileType,
		Title:              row.Title,
		AttemptCount:       row.AttemptCount,
		MaxAttempts:        row.MaxAttempts,
		ProgressPercentage: row.ProgressPercentage,
		CreatedAt:          row.CreatedAt,
		StartedAt:          row.StartedAt,
		CompletedAt:        row.CompletedAt,
		FailedAt:           row.FailedAt,
		NextRetryAt:        row.NextRetryAt,
	}

	if row.ResumeID.Valid {
		id := kernel.ResumeID(row.ResumeID.String)
		job.ResumeID = &id
	}
	if row.ErrorMessage.Valid {
		job.ErrorMessage = row.ErrorMessage.String
	}
	if row.CurrentStep.Valid {
		step := resume.ProcessingStep(row.CurrentStep.String)
		job.CurrentStep = &step
	}
	if len(row.ErrorDetails) > 0 && string(row.ErrorDetails) != "null" {
		if err := json.Unmarshal(row.ErrorDetails, &job.ErrorDetails); err != nil {
			return nil, fmt.Errorf("unmarshal error details: %w", err)
		}
	}
	if len(row.RequestPayload) > 0 && string(row.RequestPayload) != "null" {
		if err := json.Unmarshal(row.RequestPayload, &job.RequestPayload); err != nil {
			return nil, fmt.Errorf("unmarshal request payload: %w", err)
		}
	}

	return job, nil
}

const jobColumns = `
	id, tenant_id, candidate_id, resume_id, status,
	file_path, file_name, file_type, title,
	attempt_count, max_attempts, error_message, error_details,
	current_step, progress_percentage,
	created_at, started_at, completed_at, failed_at, next_retry_at,
	request_payload`

// ============================================================================
// CRUD Operations
// ============================================================================

// Create persists a new processing job record
func (r *PostgresJobRepository) Create(ctx context.Context, job *resume.ResumeProcessingJob) error {
	errorDetails, payload, err := marshalJobJSON(job)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO resume_processing_jobs (` + jobColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err = r.db.ExecContext(ctx, query,
		job.ID, job.TenantID, job.CandidateID, resumeIDOrNil(job.ResumeID), job.Status,
		job.FilePath, job.FileName, job.FileType, job.Title,
		job.AttemptCount, job.MaxAttempts, nullString(job.ErrorMessage), errorDetails,
		stepOrNil(job.CurrentStep), job.ProgressPercentage,
		job.CreatedAt, job.StartedAt, job.CompletedAt, job.FailedAt, job.NextRetryAt,
		payload,
	)
	if err != nil {
		return resume.ErrJobCreationFailed().
			WithDetail("job_id", job.ID).
			WithDetails(map[string]any{"error": err.Error()})
	}
	return nil
}

// Update updates a processing job record
func (r *PostgresJobRepository) Update(ctx context.Context, job *resume.ResumeProcessingJob) error {
	errorDetails, payload, err := marshalJobJSON(job)
	if err != nil {
		return err
	}

	query := `
		UPDATE resume_processing_jobs SET
			resume_id = $1,
			status = $2,
			attempt_count = $3,
			error_message = $4,
			error_details = $5,
			current_step = $6,
			progress_percentage = $7,
			started_at = $8,
			completed_at = $9,
			failed_at = $10,
			next_retry_at = $11,
			request_payload = $12
		WHERE id = $13`

	result, err := r.db.ExecContext(ctx, query,
		resumeIDOrNil(job.ResumeID), job.Status,
		job.AttemptCount, nullString(job.ErrorMessage), errorDetails,
		stepOrNil(job.CurrentStep), job.ProgressPercentage,
		job.StartedAt, job.CompletedAt, job.FailedAt, job.NextRetryAt,
		payload, job.ID,
	)
	if err != nil {
		return resume.ErrJobUpdateFailed().
			WithDetail("job_id", job.ID).
			WithDetails(map[string]any{"error": err.Error()})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return resume.ErrJobNotFound().WithDetail("job_id", job.ID)
	}
	return nil
}

// GetByID retrieves a processing job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, jobID kernel.JobID) (*resume.ResumeProcessingJob, error) {
	var row jobRow
	query := `SELECT ` + jobColumns + ` FROM resume_processing_jobs WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, query, string(jobID)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrJobNotFound().WithDetail("job_id", jobID)
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return row.toEntity()
}

// GetByTenantID retrieves processing jobs for a tenant with pagination
func (r *PostgresJobRepository) GetByTenantID(ctx context.Context, tenantID kernel.TenantID, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.ResumeProcessingJob], error) {
	pagination = pagination.Normalize()

	var total int64
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM resume_processing_jobs WHERE tenant_id = $1`, string(tenantID))
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM resume_processing_jobs
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT %d OFFSET %d`, jobColumns, pagination.PageSize, pagination.Offset())

	var rows []jobRow
	if err := r.db.SelectContext(ctx, &rows, query, string(tenantID)); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	jobs := make([]resume.ResumeProcessingJob, 0, len(rows))
	for i := range rows {
		job, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}

	paginated := kernel.NewPaginated(jobs, pagination.Page, pagination.PageSize, int(total))
	return &paginated, nil
}

// ============================================================================
// Status Transitions
// ============================================================================

// MarkAsProcessing moves a job into processing state
func (r *PostgresJobRepository) MarkAsProcessing(ctx context.Context, jobID kernel.JobID) error {
	query := `
		UPDATE resume_processing_jobs SET
			status = $1,
			started_at = NOW(),
			attempt_count = attempt_count + 1
		WHERE id = $2`
	return r.execStatusUpdate(ctx, query, jobID, resume.JobStatusProcessing)
}

// MarkAsCompleted finishes a job and links the created resume
func (r *PostgresJobRepository) MarkAsCompleted(ctx context.Context, jobID kernel.JobID, resumeID kernel.ResumeID) error {
	query := `
		UPDATE resume_processing_jobs SET
			status = $1,
			resume_id = $3,
			completed_at = NOW(),
			progress_percentage = 100,
			error_message = NULL,
			error_details = NULL
		WHERE id = $2`
	return r.execStatusUpdate(ctx, query, jobID, resume.JobStatusCompleted, string(resumeID))
}

// MarkAsFailed records a terminal failure with its error details
func (r *PostgresJobRepository) MarkAsFailed(ctx context.Context, jobID kernel.JobID, errorMsg string, errorDetails map[string]any) error {
	details, err := json.Marshal(errorDetails)
	if err != nil {
		details = []byte("{}")
	}

	query := `
		UPDATE resume_processing_jobs SET
			status = $1,
			failed_at = NOW(),
			error_message = $3,
			error_details = $4
		WHERE id = $2`
	return r.execStatusUpdate(ctx, query, jobID, resume.JobStatusFailed, errorMsg, details)
}

// UpdateProgress records the current step and completion percentage
func (r *PostgresJobRepository) UpdateProgress(ctx context.Context, jobID kernel.JobID, step resume.ProcessingStep, percentage int) error {
	query := `
		UPDATE resume_processing_jobs SET
			current_step = $2,
			progress_percentage = $3
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, string(jobID), string(step), percentage)
	if err != nil {
		return resume.ErrJobUpdateFailed().
			WithDetail("job_id", jobID).
			WithDetail("step", step).
			WithDetails(map[string]any{"error": err.Error()})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return resume.ErrJobNotFound().WithDetail("job_id", jobID)
	}
	return nil
}

func (r *PostgresJobRepository) execStatusUpdate(ctx context.Context, query string, jobID kernel.JobID, status resume.JobStatus, extra ...any) error {
	args := append([]any{string(status), string(jobID)}, extra...)
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return resume.ErrJobUpdateFailed().
			WithDetail("job_id", jobID).
			WithDetail("target_status", status).
			WithDetails(map[string]any{"error": err.Error()})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return resume.ErrJobNotFound().WithDetail("job_id", jobID)
	}
	return nil
}

// ============================================================================
// Helpers
// ============================================================================

func marshalJobJSON(job *resume.ResumeProcessingJob) (errorDetails, payload []byte, err error) {
	errorDetails, err = json.Marshal(job.ErrorDetails)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal error details: %w", err)
	}
	payload, err = json.Marshal(job.RequestPayload)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal request payload: %w", err)
	}
	return errorDetails, payload, nil
}

func resumeIDOrNil(id *kernel.ResumeID) any {
	if id == nil {
		return nil
	}
	return string(*id)
}

func stepOrNil(step *resume.ProcessingStep) any {
	if step == nil {
		return nil
	}
	return string(*step)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

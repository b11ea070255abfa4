package jobinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hotgigs/talent/internal/matching"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/job"
)

// PostgresJobRepository implements job.Repository using PostgreSQL
type PostgresJobRepository struct {
	db *sqlx.DB
}

// NewPostgresJobRepository creates a new PostgreSQL job repository
func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type jobModel struct {
	ID             string          `db:"id"`
	TenantID       string          `db:"tenant_id"`
	Title          string          `db:"title"`
	Company        string          `db:"company"`
	Location       string          `db:"location"`
	Industry       string          `db:"industry"`
	Description    string          `db:"description"`
	Requirements   string          `db:"requirements"`
	RequiredSkills json.RawMessage `db:"required_skills"`
	RemoteOK       bool            `db:"remote_ok"`
	SalaryMin      float64         `db:"salary_min"`
	SalaryMax      float64         `db:"salary_max"`
	ExperienceReq  json.RawMessage `db:"experience_requirements"`
	PostedBy       string          `db:"posted_by"`
	Status         string          `db:"status"`
	PublishedAt    *time.Time      `db:"published_at"`
	ClosedAt       *time.Time      `db:"closed_at"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (m *jobModel) toEntity() (*job.Job, error) {
	var skills []matching.RequiredSkill
	if len(m.RequiredSkills) > 0 {
		if err := json.Unmarshal(m.RequiredSkills, &skills); err != nil {
			return nil, fmt.Errorf("unmarshal required skills: %w", err)
		}
	}

	var expReq *matching.ExperienceRequirements
	if len(m.ExperienceReq) > 0 && string(m.ExperienceReq) != "null" {
		expReq = &matching.ExperienceRequirements{}
		if err := json.Unmarshal(m.ExperienceReq, expReq); err != nil {
			return nil, fmt.Errorf("unmarshal experience requirements: %w", err)
		}
	}

	return &job.Job{
		ID:                     kernel.JobID(m.ID),
		TenantID:               kernel.TenantID(m.TenantID),
		Title:                  kernel.JobTitle(m.Title),
		Company:                m.Company,
		Location:               kernel.Location(m.Location),
		Industry:               m.Industry,
		Description:            kernel.JobDescription(m.Description),
		Requirements:           m.Requirements,
		RequiredSkills:         skills,
		RemoteOK:               m.RemoteOK,
		SalaryMin:              m.SalaryMin,
		SalaryMax:              m.SalaryMax,
		ExperienceRequirements: expReq,
		PostedBy:               kernel.UserID(m.PostedBy),
		Status:                 job.JobStatus(m.Status),
		PublishedAt:            m.PublishedAt,
		ClosedAt:               m.ClosedAt,
		CreatedAt:              m.CreatedAt,
		UpdatedAt:              m.UpdatedAt,
	}, nil
}

func fromEntity(j *job.Job) (*jobModel, error) {
	skills, err := json.Marshal(j.RequiredSkills)
	if err != nil {
		return nil, fmt.Errorf("marshal required skills: %w", err)
	}

	expReq, err := json.Marshal(j.ExperienceRequirements)
	if err != nil {
		return nil, fmt.Errorf("marshal experience requirements: %w", err)
	}

	return &jobModel{
		ID:             string(j.ID),
		TenantID:       string(j.TenantID),
		Title:          string(j.Title),
		Company:        j.Company,
		Location:       string(j.Location),
		Industry:       j.Industry,
		Description:    string(j.Description),
		Requirements:   j.Requirements,
		RequiredSkills: skills,
		RemoteOK:       j.RemoteOK,
		SalaryMin:      j.SalaryMin,
		SalaryMax:      j.SalaryMax,
		ExperienceReq:  expReq,
		PostedBy:       string(j.PostedBy),
		Status:         string(j.Status),
		PublishedAt:    j.PublishedAt,
		ClosedAt:       j.ClosedAt,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

const jobColumns = `
	id, tenant_id, title, company, location, industry, description,
	requirements, required_skills, remote_ok, salary_min, salary_max,
	experience_requirements, posted_by, status,
	published_at, closed_at, created_at, updated_at`

// Create creates a new job
func (r *PostgresJobRepository) Create(ctx context.Context, jobEntity *job.Job) error {
	model, err := fromEntity(jobEntity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO jobs (` + jobColumns + `)
		VALUES (
			:id, :tenant_id, :title, :company, :location, :industry, :description,
			:requirements, :required_skills, :remote_ok, :salary_min, :salary_max,
			:experience_requirements, :posted_by, :status,
			:published_at, :closed_at, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// Update updates an existing job
func (r *PostgresJobRepository) Update(ctx context.Context, id kernel.JobID, jobEntity *job.Job) error {
	model, err := fromEntity(jobEntity)
	if err != nil {
		return err
	}
	model.ID = string(id)

	query := `
		UPDATE jobs SET
			title = :title,
			company = :company,
			location = :location,
			industry = :industry,
			description = :description,
			requirements = :requirements,
			required_skills = :required_skills,
			remote_ok = :remote_ok,
			salary_min = :salary_min,
			salary_max = :salary_max,
			experience_requirements = :experience_requirements,
			status = :status,
			published_at = :published_at,
			closed_at = :closed_at,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return job.ErrJobNotFound().WithDetail("id", id)
	}
	return nil
}

// GetByID retrieves a job by ID
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	var model jobModel
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	if err := r.db.GetContext(ctx, &model, query, string(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("id", id)
		}
		return nil, fmt.Errorf("get job: %w", err)
	}
	return model.toEntity()
}

// Delete deletes a job by ID
func (r *PostgresJobRepository) Delete(ctx context.Context, id kernel.JobID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return job.ErrJobNotFound().WithDetail("id", id)
	}
	return nil
}

// List retrieves all jobs with pagination
func (r *PostgresJobRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return r.listWhere(ctx, "", nil, pagination)
}

// ListActive retrieves only published jobs
func (r *PostgresJobRepository) ListActive(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return r.listWhere(ctx, "status = $1", []any{string(job.JobStatusActive)}, pagination)
}

// ListByUserID retrieves jobs posted by a specific user
func (r *PostgresJobRepository) ListByUserID(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	return r.listWhere(ctx, "posted_by = $1", []any{string(userID)}, pagination)
}

// ListAllActive retrieves every active job without pagination
func (r *PostgresJobRepository) ListAllActive(ctx context.Context) ([]*job.Job, error) {
	var models []jobModel
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE status = $1 ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &models, query, string(job.JobStatusActive)); err != nil {
		return nil, fmt.Errorf("list active jobs: %w", err)
	}

	jobs := make([]*job.Job, 0, len(models))
	for i := range models {
		entity, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, entity)
	}
	return jobs, nil
}

// Search searches jobs by free text and filters
func (r *PostgresJobRepository) Search(ctx context.Context, req job.SearchJobsRequest) (*kernel.Paginated[job.Job], error) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.Query != "" {
		p := arg("%" + strings.ToLower(req.Query) + "%")
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(title) LIKE %s OR LOWER(description) LIKE %s OR LOWER(company) LIKE %s)", p, p, p))
	}
	if req.Industry != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(industry) = %s", arg(strings.ToLower(req.Industry))))
	}
	if req.Location != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(location) LIKE %s", arg("%"+strings.ToLower(req.Location)+"%")))
	}
	if req.RemoteOK != nil {
		conditions = append(conditions, fmt.Sprintf("remote_ok = %s", arg(*req.RemoteOK)))
	}
	if req.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = %s", arg(string(req.Status))))
	}

	return r.listWhere(ctx, strings.Join(conditions, " AND "), args, req.Pagination)
}

// Exists checks if a job exists by ID
func (r *PostgresJobRepository) Exists(ctx context.Context, id kernel.JobID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM jobs WHERE id = $1)`, string(id))
	if err != nil {
		return false, fmt.Errorf("check job exists: %w", err)
	}
	return exists, nil
}

// CountApplications counts applications submitted to a job
func (r *PostgresJobRepository) CountApplications(ctx context.Context, jobID kernel.JobID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, string(jobID))
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return count, nil
}

func (r *PostgresJobRepository) listWhere(ctx context.Context, where string, args []any, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	pagination = pagination.Normalize()

	clause := ""
	if where != "" {
		clause = " WHERE " + where
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM jobs` + clause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs%s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		jobColumns, clause, pagination.PageSize, pagination.Offset())

	var models []jobModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	jobs := make([]job.Job, 0, len(models))
	for i := range models {
		entity, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *entity)
	}

	paginated := kernel.NewPaginated(jobs, pagination.Page, pagination.PageSize, int(total))
	return &paginated, nil
}

package candidateinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hotgigs/talent/internal/parsing"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/candidate"
)

// PostgresCandidateRepository implements candidate.Repository using PostgreSQL
type PostgresCandidateRepository struct {
	db *sqlx.DB
}

// NewPostgresCandidateRepository creates a new PostgreSQL candidate repository
func NewPostgresCandidateRepository(db *sqlx.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type candidateModel struct {
	ID               string          `db:"id"`
	TenantID         string          `db:"tenant_id"`
	Email            string          `db:"email"`
	Phone            string          `db:"phone"`
	FirstName        string          `db:"first_name"`
	LastName         string          `db:"last_name"`
	PasswordHash     string          `db:"password_hash"`
	Role             string          `db:"role"`
	Status           string          `db:"status"`
	Profile          json.RawMessage `db:"profile"`
	PrimaryResumeID  sql.NullString  `db:"primary_resume_id"`
	ProfileUpdatedAt *time.Time      `db:"profile_updated_at"`
	ArchivedAt       *time.Time      `db:"archived_at"`
	CreatedAt        time.Time       `db:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at"`
}

func (m *candidateModel) toEntity() (*candidate.Candidate, error) {
	profile := parsing.NewParsedResume()
	if len(m.Profile) > 0 && string(m.Profile) != "null" {
		if err := json.Unmarshal(m.Profile, profile); err != nil {
			return nil, fmt.Errorf("unmarshal candidate profile: %w", err)
		}
	}

	var resumeID *kernel.ResumeID
	if m.PrimaryResumeID.Valid {
		id := kernel.ResumeID(m.PrimaryResumeID.String)
		resumeID = &id
	}

	return &candidate.Candidate{
		ID:               kernel.CandidateID(m.ID),
		TenantID:         kernel.TenantID(m.TenantID),
		Email:            kernel.Email(m.Email),
		Phone:            kernel.Phone(m.Phone),
		FirstName:        kernel.FirstName(m.FirstName),
		LastName:         kernel.LastName(m.LastName),
		PasswordHash:     m.PasswordHash,
		Role:             candidate.CandidateRole(m.Role),
		Status:           candidate.CandidateStatus(m.Status),
		Profile:          *profile,
		PrimaryResumeID:  resumeID,
		ProfileUpdatedAt: m.ProfileUpdatedAt,
		ArchivedAt:       m.ArchivedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}

func fromEntity(c *candidate.Candidate) (*candidateModel, error) {
	profile, err := json.Marshal(c.Profile)
	if err != nil {
		return nil, fmt.Errorf("marshal candidate profile: %w", err)
	}

	var resumeID sql.NullString
	if c.PrimaryResumeID != nil {
		resumeID = sql.NullString{String: string(*c.PrimaryResumeID), Valid: true}
	}

	return &candidateModel{
		ID:               string(c.ID),
		TenantID:         string(c.TenantID),
		Email:            string(c.Email),
		Phone:            string(c.Phone),
		FirstName:        string(c.FirstName),
		LastName:         string(c.LastName),
		PasswordHash:     c.PasswordHash,
		Role:             string(c.Role),
		Status:           string(c.Status),
		Profile:          profile,
		PrimaryResumeID:  resumeID,
		ProfileUpdatedAt: c.ProfileUpdatedAt,
		ArchivedAt:       c.ArchivedAt,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}, nil
}

// ============================================================================
// Repository Implementation
// ============================================================================

const candidateColumns = `
	id, tenant_id, email, phone, first_name, last_name, password_hash,
	role, status, profile, primary_resume_id, profile_updated_at,
	archived_at, created_at, updated_at`

// Create creates a new candidate
func (r *PostgresCandidateRepository) Create(ctx context.Context, entity *candidate.Candidate) error {
	model, err := fromEntity(entity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO candidates (` + candidateColumns + `)
		VALUES (
			:id, :tenant_id, :email, :phone, :first_name, :last_name, :password_hash,
			:role, :status, :profile, :primary_resume_id, :profile_updated_at,
			:archived_at, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return candidate.ErrEmailAlreadyRegistered().WithDetail("email", entity.Email)
		}
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

// Update updates an existing candidate
func (r *PostgresCandidateRepository) Update(ctx context.Context, id kernel.CandidateID, entity *candidate.Candidate) error {
	model, err := fromEntity(entity)
	if err != nil {
		return err
	}
	model.ID = string(id)

	query := `
		UPDATE candidates SET
			email = :email,
			phone = :phone,
			first_name = :first_name,
			last_name = :last_name,
			password_hash = :password_hash,
			role = :role,
			status = :status,
			profile = :profile,
			primary_resume_id = :primary_resume_id,
			profile_updated_at = :profile_updated_at,
			archived_at = :archived_at,
			updated_at = :updated_at
		WHERE id = :id`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("id", id)
	}
	return nil
}

// GetByID retrieves a candidate by ID
func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	var model candidateModel
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	if err := r.db.GetContext(ctx, &model, query, string(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidate.ErrCandidateNotFound().WithDetail("id", id)
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return model.toEntity()
}

// GetByEmail retrieves a candidate by email
func (r *PostgresCandidateRepository) GetByEmail(ctx context.Context, email kernel.Email) (*candidate.Candidate, error) {
	var model candidateModel
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE LOWER(email) = LOWER($1)`

	if err := r.db.GetContext(ctx, &model, query, string(email)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, candidate.ErrCandidateNotFound().WithDetail("email", email)
		}
		return nil, fmt.Errorf("get candidate by email: %w", err)
	}
	return model.toEntity()
}

// Delete deletes a candidate by ID
func (r *PostgresCandidateRepository) Delete(ctx context.Context, id kernel.CandidateID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return candidate.ErrCandidateNotFound().WithDetail("id", id)
	}
	return nil
}

// List retrieves all candidates with pagination
func (r *PostgresCandidateRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[candidate.Candidate], error) {
	pagination = pagination.Normalize()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM candidates`); err != nil {
		return nil, fmt.Errorf("count candidates: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM candidates ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		candidateColumns, pagination.PageSize, pagination.Offset())

	var models []candidateModel
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	candidates := make([]candidate.Candidate, 0, len(models))
	for i := range models {
		entity, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *entity)
	}

	paginated := kernel.NewPaginated(candidates, pagination.Page, pagination.PageSize, int(total))
	return &paginated, nil
}

// ListActiveWithProfiles retrieves active candidates with a parsed profile
func (r *PostgresCandidateRepository) ListActiveWithProfiles(ctx context.Context) ([]*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + `
		FROM candidates
		WHERE status = $1 AND profile_updated_at IS NOT NULL
		ORDER BY profile_updated_at DESC`

	var models []candidateModel
	if err := r.db.SelectContext(ctx, &models, query, string(candidate.CandidateStatusActive)); err != nil {
		return nil, fmt.Errorf("list candidates with profiles: %w", err)
	}

	candidates := make([]*candidate.Candidate, 0, len(models))
	for i := range models {
		entity, err := models[i].toEntity()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, entity)
	}
	return candidates, nil
}

// Exists checks if a candidate exists by ID
func (r *PostgresCandidateRepository) Exists(ctx context.Context, id kernel.CandidateID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM candidates WHERE id = $1)`, string(id))
	if err != nil {
		return false, fmt.Errorf("check candidate exists: %w", err)
	}
	return exists, nil
}

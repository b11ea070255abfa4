package resumeinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/hotgigs/talent/internal/parsing"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/resume"
)

type PostgresResumeRepository struct {
	db *sqlx.DB
}

func NewPostgresResumeRepository(db *sqlx.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

// ============================================================================
// Database Model
// ============================================================================

type resumeRow struct {
	ID            string          `db:"id"`
	TenantID      string          `db:"tenant_id"`
	CandidateID   string          `db:"candidate_id"`
	Title         string          `db:"title"`
	IsActive      bool            `db:"is_active"`
	IsDefault     bool            `db:"is_default"`
	Parsed        json.RawMessage `db:"parsed"`
	Provider      string          `db:"provider"`
	FileURL       string          `db:"file_url"`
	FileName      string          `db:"file_name"`
	FileType      string          `db:"file_type"`
	ParsedAt      time.Time       `db:"parsed_at"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
	CreatedAt     time.Time       `db:"created_at"`
}

func (row *resumeRow) toEntity() (*resume.Resume, error) {
	parsed := parsing.NewParsedResume()
	if len(row.Parsed) > 0 && string(row.Parsed) != "null" {
		if err := json.Unmarshal(row.Parsed, parsed); err != nil {
			return nil, fmt.Errorf("unmarshal parsed resume: %w", err)
		}
	}

	return &resume.Resume{
		ID:            kernel.ResumeID(row.ID),
		TenantID:      kernel.TenantID(row.TenantID),
		CandidateID:   kernel.CandidateID(row.CandidateID),
		Title:         row.Title,
		IsActive:      row.IsActive,
		IsDefault:     row.IsDefault,
		Parsed:        *parsed,
		Provider:      row.Provider,
		FileURL:       row.FileURL,
		FileName:      row.FileName,
		FileType:      row.FileType,
		ParsedAt:      row.ParsedAt,
		LastUpdatedAt: row.LastUpdatedAt,
		CreatedAt:     row.CreatedAt,
	}, nil
}

const resumeColumns = `
	id, tenant_id, candidate_id, title, is_active, is_default,
	parsed, provider, file_url, file_name, file_type,
	parsed_at, last_updated_at, created_at`

// ============================================================================
// CRUD Operations
// ============================================================================

// Create creates a new resume
func (r *PostgresResumeRepository) Create(ctx context.Context, resumeModel *resume.Resume) error {
	parsed, err := json.Marshal(resumeModel.Parsed)
	if err != nil {
		return resume.ErrInvalidResumeData().
			WithDetail("field", "parsed").
			WithDetails(map[string]any{"error": err.Error()})
	}

	query := `
		INSERT INTO resumes (` + resumeColumns + `, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = r.db.ExecContext(ctx, query,
		resumeModel.ID, resumeModel.TenantID, resumeModel.CandidateID,
		resumeModel.Title, resumeModel.IsActive, resumeModel.IsDefault,
		parsed, resumeModel.Provider,
		resumeModel.FileURL, resumeModel.FileName, resumeModel.FileType,
		resumeModel.ParsedAt, resumeModel.LastUpdatedAt, resumeModel.CreatedAt,
		embeddingOrNil(resumeModel.Embedding),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return resume.ErrResumeAlreadyExists().
				WithDetail("resume_id", resumeModel.ID).
				WithDetail("candidate_id", resumeModel.CandidateID)
		}
		return fmt.Errorf("insert resume: %w", err)
	}

	return nil
}

// Update updates an existing resume
func (r *PostgresResumeRepository) Update(ctx context.Context, id kernel.ResumeID, resumeModel *resume.Resume) error {
	parsed, err := json.Marshal(resumeModel.Parsed)
	if err != nil {
		return resume.ErrInvalidResumeData().
			WithDetail("field", "parsed").
			WithDetails(map[string]any{"error": err.Error()})
	}

	query := `
		UPDATE resumes SET
			title = $1,
			is_active = $2,
			is_default = $3,
			parsed = $4,
			provider = $5,
			embedding = $6,
			last_updated_at = $7
		WHERE id = $8`

	result, err := r.db.ExecContext(ctx, query,
		resumeModel.Title, resumeModel.IsActive, resumeModel.IsDefault,
		parsed, resumeModel.Provider,
		embeddingOrNil(resumeModel.Embedding),
		resumeModel.LastUpdatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("update resume: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return resume.ErrResumeNotFound().WithDetail("resume_id", id)
	}

	return nil
}

// GetByID retrieves a resume by ID
func (r *PostgresResumeRepository) GetByID(ctx context.Context, id kernel.ResumeID) (*resume.Resume, error) {
	var row resumeRow
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, query, string(id)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrResumeNotFound().WithDetail("resume_id", id)
		}
		return nil, fmt.Errorf("get resume: %w", err)
	}

	entity, err := row.toEntity()
	if err != nil {
		return nil, err
	}

	// The vector column loads separately; sqlx struct scanning and
	// pgvector do not mix in one query here.
	entity.Embedding = r.getEmbedding(ctx, id)
	return entity, nil
}

// Delete deletes a resume
func (r *PostgresResumeRepository) Delete(ctx context.Context, id kernel.ResumeID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1`, string(id))
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return resume.ErrResumeNotFound().WithDetail("resume_id", id)
	}
	return nil
}

// ListByCandidateID retrieves all resumes for a candidate
func (r *PostgresResumeRepository) ListByCandidateID(ctx context.Context, candidateID kernel.CandidateID) ([]*resume.Resume, error) {
	var rows []resumeRow
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE candidate_id = $1 ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, string(candidateID)); err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}

	resumes := make([]*resume.Resume, 0, len(rows))
	for i := range rows {
		entity, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, entity)
	}
	return resumes, nil
}

// GetDefaultByCandidateID retrieves the default resume for a candidate
func (r *PostgresResumeRepository) GetDefaultByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (*resume.Resume, error) {
	var row resumeRow
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE candidate_id = $1 AND is_default = true LIMIT 1`

	if err := r.db.GetContext(ctx, &row, query, string(candidateID)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrResumeNotFound().
				WithDetail("candidate_id", candidateID).
				WithDetail("filter", "default")
		}
		return nil, fmt.Errorf("get default resume: %w", err)
	}

	return row.toEntity()
}

// SetDefault sets a resume as the candidate's default
func (r *PostgresResumeRepository) SetDefault(ctx context.Context, id kernel.ResumeID, candidateID kernel.CandidateID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set default: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE resumes SET is_default = false
		WHERE candidate_id = $1 AND is_default = true`, string(candidateID))
	if err != nil {
		return fmt.Errorf("unset defaults: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE resumes SET is_default = true, last_updated_at = NOW()
		WHERE id = $1 AND candidate_id = $2`, string(id), string(candidateID))
	if err != nil {
		return fmt.Errorf("set default: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return resume.ErrCandidateMismatch().
			WithDetail("resume_id", id).
			WithDetail("candidate_id", candidateID)
	}

	return tx.Commit()
}

// ToggleActive activates or deactivates a resume
func (r *PostgresResumeRepository) ToggleActive(ctx context.Context, id kernel.ResumeID, isActive bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE resumes SET is_active = $1, last_updated_at = NOW() WHERE id = $2`,
		isActive, string(id))
	if err != nil {
		return fmt.Errorf("toggle resume active: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return resume.ErrResumeNotFound().WithDetail("resume_id", id)
	}
	return nil
}

// CountByCandidateID counts resumes for a candidate
func (r *PostgresResumeRepository) CountByCandidateID(ctx context.Context, candidateID kernel.CandidateID) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM resumes WHERE candidate_id = $1`, string(candidateID))
	if err != nil {
		return 0, fmt.Errorf("count resumes: %w", err)
	}
	return count, nil
}

// List retrieves all resumes with pagination
func (r *PostgresResumeRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.Resume], error) {
	pagination = pagination.Normalize()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM resumes`); err != nil {
		return nil, fmt.Errorf("count resumes: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM resumes ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		resumeColumns, pagination.PageSize, pagination.Offset())

	var rows []resumeRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}

	resumes := make([]resume.Resume, 0, len(rows))
	for i := range rows {
		entity, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, *entity)
	}

	paginated := kernel.NewPaginated(resumes, pagination.Page, pagination.PageSize, int(total))
	return &paginated, nil
}

// ============================================================================
// Semantic Search with pgvector
// ============================================================================

// SemanticSearch ranks resumes by cosine similarity to the query
// embedding
func (r *PostgresResumeRepository) SemanticSearch(ctx context.Context, queryEmbedding kernel.ResumeEmbedding, req resume.SearchResumesRequest) ([]resume.ResumeMatchResult, error) {
	if len(queryEmbedding) == 0 {
		return nil, resume.ErrSearchFailed().
			WithDetail("reason", "empty query embedding")
	}

	conditions := []string{"embedding IS NOT NULL"}
	args := []any{pgvector.NewVector(queryEmbedding)}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.TenantID != nil {
		conditions = append(conditions, fmt.Sprintf("tenant_id = %s", arg(string(*req.TenantID))))
	}
	if req.OnlyActive {
		conditions = append(conditions, "is_active = true")
	}

	topK := req.TopK
	if topK <= 0 {
		topK = 10
	}

	query := fmt.Sprintf(`
		SELECT %s, 1 - (embedding <=> $1) AS similarity_score
		FROM resumes
		WHERE %s
		ORDER BY embedding <=> $1
		LIMIT %s`,
		resumeColumns, strings.Join(conditions, " AND "), arg(topK))

	type matchRow struct {
		resumeRow
		SimilarityScore float64 `db:"similarity_score"`
	}

	var rows []matchRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}

	matches := make([]resume.ResumeMatchResult, 0, len(rows))
	for i := range rows {
		entity, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		matches = append(matches, resume.ResumeMatchResult{
			Resume:          *resume.ToResumeSummaryResponse(entity),
			SimilarityScore: rows[i].SimilarityScore,
		})
	}
	return matches, nil
}

// ============================================================================
// Embeddings
// ============================================================================

// UpdateEmbedding updates only the embedding for a resume
func (r *PostgresResumeRepository) UpdateEmbedding(ctx context.Context, id kernel.ResumeID, embedding kernel.ResumeEmbedding) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE resumes SET embedding = $1, last_updated_at = NOW() WHERE id = $2`,
		embeddingOrNil(embedding), string(id))
	if err != nil {
		return resume.ErrEmbeddingGenerationFailed().
			WithDetail("resume_id", id).
			WithDetail("operation", "update_embedding").
			WithDetails(map[string]any{"error": err.Error()})
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return resume.ErrResumeNotFound().WithDetail("resume_id", id)
	}
	return nil
}

func (r *PostgresResumeRepository) getEmbedding(ctx context.Context, id kernel.ResumeID) kernel.ResumeEmbedding {
	var raw sql.NullString
	err := r.db.GetContext(ctx, &raw,
		`SELECT embedding::text FROM resumes WHERE id = $1`, string(id))
	if err != nil || !raw.Valid {
		return nil
	}

	vec := pgvector.Vector{}
	if err := vec.Scan(raw.String); err != nil {
		return nil
	}
	return kernel.ResumeEmbedding(vec.Slice())
}

func embeddingOrNil(embedding kernel.ResumeEmbedding) any {
	if len(embedding) == 0 {
		return nil
	}
	return pgvector.NewVector(embedding)
}

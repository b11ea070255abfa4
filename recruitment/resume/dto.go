package resume

import (
	"time"

	"github.com/hotgigs/talent/internal/parsing"
	"github.com/hotgigs/talent/pkg/kernel"
)

// ============================================================================
// Request DTOs
// ============================================================================

// ParseResumeRequest - Request to parse and create a resume
type ParseResumeRequest struct {
	TenantID    kernel.TenantID    `json:"tenant_id" validate:"required"`
	CandidateID kernel.CandidateID `json:"candidate_id" validate:"required"`
	FilePath    string             `json:"file_path" validate:"required"`
	FileName    string             `json:"file_name" validate:"required"`
	FileType    string             `json:"file_type" validate:"required"`
	Title       string             `json:"title" validate:"required"`
	// Provider optionally pins the starting parse provider.
	Provider  string `json:"provider,omitempty"`
	IsDefault bool   `json:"is_default"`
}

// ListResumesRequest - List resumes for a candidate
type ListResumesRequest struct {
	CandidateID kernel.CandidateID       `json:"candidate_id" validate:"required"`
	OnlyActive  bool                     `json:"only_active"`
	Pagination  kernel.PaginationOptions `json:"pagination"`
}

// SearchResumesRequest - Semantic search request
type SearchResumesRequest struct {
	Query      string           `json:"query" validate:"required"`
	TopK       int              `json:"top_k"`
	OnlyActive bool             `json:"only_active"`
	TenantID   *kernel.TenantID `json:"tenant_id,omitempty"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// ResumeResponse - Full resume response
type ResumeResponse struct {
	ID            kernel.ResumeID      `json:"id"`
	TenantID      kernel.TenantID      `json:"tenant_id"`
	CandidateID   kernel.CandidateID   `json:"candidate_id"`
	Title         string               `json:"title"`
	IsActive      bool                 `json:"is_active"`
	IsDefault     bool                 `json:"is_default"`
	Parsed        parsing.ParsedResume `json:"parsed"`
	Provider      string               `json:"provider"`
	HasEmbedding  bool                 `json:"has_embedding"`
	FileURL       string               `json:"file_url"`
	FileName      string               `json:"file_name"`
	FileType      string               `json:"file_type"`
	ParsedAt      time.Time            `json:"parsed_at"`
	LastUpdatedAt time.Time            `json:"last_updated_at"`
	CreatedAt     time.Time            `json:"created_at"`
}

// ResumeSummaryResponse - Lightweight resume summary
type ResumeSummaryResponse struct {
	ID            kernel.ResumeID    `json:"id"`
	CandidateID   kernel.CandidateID `json:"candidate_id"`
	Title         string             `json:"title"`
	IsActive      bool               `json:"is_active"`
	IsDefault     bool               `json:"is_default"`
	FullName      string             `json:"full_name"`
	Email         string             `json:"email"`
	TopSkills     []string           `json:"top_skills,omitempty"`
	Confidence    float64            `json:"confidence_score"`
	Completeness  float64            `json:"completeness_score"`
	Provider      string             `json:"provider"`
	ParsedAt      time.Time          `json:"parsed_at"`
	LastUpdatedAt time.Time          `json:"last_updated_at"`
}

// ResumeMatchResult - Single resume match with similarity score
type ResumeMatchResult struct {
	Resume          ResumeSummaryResponse `json:"resume"`
	SimilarityScore float64               `json:"similarity_score"`
}

// SearchResumesResponse - Results from semantic search
type SearchResumesResponse struct {
	Results       []ResumeMatchResult `json:"results"`
	SearchQuery   string              `json:"search_query"`
	ExecutionTime string              `json:"execution_time"`
}

// ListResumesResponse - List of a candidate's resumes
type ListResumesResponse struct {
	Resumes       kernel.Paginated[ResumeSummaryResponse] `json:"resumes"`
	ActiveCount   int                                     `json:"active_count"`
	InactiveCount int                                     `json:"inactive_count"`
	DefaultResume *kernel.ResumeID                        `json:"default_resume,omitempty"`
}

// ============================================================================
// Mapper Functions
// ============================================================================

// ToResumeResponse converts a Resume domain model to ResumeResponse DTO
func ToResumeResponse(r *Resume) *ResumeResponse {
	return &ResumeResponse{
		ID:            r.ID,
		TenantID:      r.TenantID,
		CandidateID:   r.CandidateID,
		Title:         r.Title,
		IsActive:      r.IsActive,
		IsDefault:     r.IsDefault,
		Parsed:        r.Parsed,
		Provider:      r.Provider,
		HasEmbedding:  r.HasEmbedding(),
		FileURL:       r.FileURL,
		FileName:      r.FileName,
		FileType:      r.FileType,
		ParsedAt:      r.ParsedAt,
		LastUpdatedAt: r.LastUpdatedAt,
		CreatedAt:     r.CreatedAt,
	}
}

// ToResumeSummaryResponse converts a Resume to ResumeSummaryResponse
func ToResumeSummaryResponse(r *Resume) *ResumeSummaryResponse {
	summary := &ResumeSummaryResponse{
		ID:            r.ID,
		CandidateID:   r.CandidateID,
		Title:         r.Title,
		IsActive:      r.IsActive,
		IsDefault:     r.IsDefault,
		FullName:      r.Parsed.PersonalInfo.FullName,
		Email:         r.Parsed.ContactInfo.Email,
		Confidence:    r.Parsed.Metadata.ConfidenceScore,
		Completeness:  r.Parsed.Metadata.CompletenessScore,
		Provider:      r.Provider,
		ParsedAt:      r.ParsedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}

	skills := r.SkillNames()
	if len(skills) > 10 {
		skills = skills[:10]
	}
	summary.TopSkills = skills

	return summary
}

// ToListResumesResponse creates a paginated list response
func ToListResumesResponse(
	resumes []*Resume,
	page, pageSize, total int,
	activeCount, inactiveCount int,
	defaultResumeID *kernel.ResumeID,
) *ListResumesResponse {
	summaries := make([]ResumeSummaryResponse, len(resumes))
	for i, r := range resumes {
		summaries[i] = *ToResumeSummaryResponse(r)
	}

	return &ListResumesResponse{
		Resumes:       kernel.NewPaginated(summaries, page, pageSize, total),
		ActiveCount:   activeCount,
		InactiveCount: inactiveCount,
		DefaultResume: defaultResumeID,
	}
}

package resumesrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hotgigs/talent/internal/ai/embeddings"
	"github.com/hotgigs/talent/internal/parsing"
	"github.com/hotgigs/talent/pkg/fsx"
	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/pkg/logx"
	"github.com/hotgigs/talent/recruitment/candidate"
	"github.com/hotgigs/talent/recruitment/resume"
)

const (
	MaxResumesPerCandidate = 20
	MaxUploadSize          = parsing.MaxFileSize
	EmbeddingModel         = "text-embedding-3-small"
	EmbeddingDimension     = 1536
)

type Service struct {
	repo       resume.Repository
	jobRepo    resume.JobRepository
	candidates candidate.Repository
	parser     *parsing.Parser
	embedGen   *embeddings.Generator
	fileReader fsx.FileReader
	queue      resume.JobQueue
}

// NewService creates a new resume service
func NewService(
	repo resume.Repository,
	jobRepo resume.JobRepository,
	candidates candidate.Repository,
	parser *parsing.Parser,
	embedGen *embeddings.Generator,
	fileReader fsx.FileReader,
	queue resume.JobQueue,
) *Service {
	return &Service{
		repo:       repo,
		jobRepo:    jobRepo,
		candidates: candidates,
		parser:     parser,
		embedGen:   embedGen,
		fileReader: fileReader,
		queue:      queue,
	}
}

// ============================================================================
// Upload & Parse Resume
// ============================================================================

// ParseAndCreateResume reads, parses, and creates a resume with its
// embedding in a single synchronous call.
func (s *Service) ParseAndCreateResume(ctx context.Context, req resume.ParseResumeRequest) (*resume.ResumeResponse, error) {
	logx.Infof("Starting ParseAndCreateResume for CandidateID: %s, FilePath: %s", req.CandidateID, req.FilePath)

	if err := s.checkResumeLimit(ctx, req.CandidateID); err != nil {
		return nil, err
	}

	fileData, err := s.fileReader.ReadFile(ctx, req.FilePath)
	if err != nil {
		return nil, resume.ErrFileReadFailed().
			WithDetail("file_path", req.FilePath).
			WithDetails(map[string]any{
				"candidate_id": req.CandidateID,
				"error":        err.Error(),
			})
	}

	parsed, err := s.parser.Parse(ctx, parsing.Input{
		Data:     fileData,
		Filename: req.FileName,
		Provider: req.Provider,
	})
	if err != nil {
		return nil, resume.ErrResumeParseFailed().
			WithDetail("file_name", req.FileName).
			WithDetail("provider", req.Provider).
			WithDetails(map[string]any{
				"candidate_id": req.CandidateID,
				"error":        err.Error(),
			})
	}

	resumeModel := s.buildResume(parsed, req)

	logx.Infof("Resume parsed for CandidateID: %s via provider %s (confidence %.2f)",
		req.CandidateID, resumeModel.Provider, parsed.Metadata.ConfidenceScore)

	embedding, err := s.generateEmbedding(ctx, resumeModel)
	if err != nil {
		return nil, resume.ErrEmbeddingGenerationFailed().
			WithDetail("resume_title", req.Title).
			WithDetails(map[string]any{
				"candidate_id": req.CandidateID,
				"error":        err.Error(),
			})
	}
	resumeModel.Embedding = embedding

	if req.IsDefault {
		if err := s.unsetOtherDefaults(ctx, req.CandidateID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, resumeModel); err != nil {
		return nil, err
	}

	s.syncCandidateProfile(ctx, resumeModel)

	return resume.ToResumeResponse(resumeModel), nil
}

// ============================================================================
// CRUD Operations
// ============================================================================

// GetResume retrieves a resume by ID
func (s *Service) GetResume(ctx context.Context, id kernel.ResumeID) (*resume.ResumeResponse, error) {
	resumeModel, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return resume.ToResumeResponse(resumeModel), nil
}

// DeleteResume deletes a resume
func (s *Service) DeleteResume(ctx context.Context, id kernel.ResumeID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.CountByCandidateID(ctx, existing.CandidateID)
	if err != nil {
		return err
	}

	// The default resume anchors the candidate profile while other
	// resumes exist.
	if existing.IsDefault && count > 1 {
		return resume.ErrDefaultResumeRequired().
			WithDetail("resume_id", id).
			WithDetail("candidate_id", existing.CandidateID)
	}

	return s.repo.Delete(ctx, id)
}

// ListResumes lists a candidate's resumes
func (s *Service) ListResumes(ctx context.Context, req resume.ListResumesRequest) (*resume.ListResumesResponse, error) {
	resumes, err := s.repo.ListByCandidateID(ctx, req.CandidateID)
	if err != nil {
		return nil, err
	}

	activeCount := 0
	inactiveCount := 0
	var defaultResumeID *kernel.ResumeID
	filtered := make([]*resume.Resume, 0, len(resumes))

	for _, r := range resumes {
		if r.IsActive {
			activeCount++
		} else {
			inactiveCount++
		}
		if r.IsDefault {
			id := r.ID
			defaultResumeID = &id
		}
		if req.OnlyActive && !r.IsActive {
			continue
		}
		filtered = append(filtered, r)
	}

	pagination := req.Pagination.Normalize()
	return resume.ToListResumesResponse(
		filtered,
		pagination.Page,
		pagination.PageSize,
		len(filtered),
		activeCount,
		inactiveCount,
		defaultResumeID,
	), nil
}

// ============================================================================
// Search
// ============================================================================

// SearchResumes performs semantic search over resume embeddings
func (s *Service) SearchResumes(ctx context.Context, req resume.SearchResumesRequest) (*resume.SearchResumesResponse, error) {
	startTime := time.Now()

	if req.TopK <= 0 {
		req.TopK = 10
	}

	queryEmbedding, err := s.embedGen.GenerateEmbedding(ctx, req.Query)
	if err != nil {
		return nil, resume.ErrSearchFailed().
			WithDetail("query", req.Query).
			WithDetails(map[string]any{"error": err.Error()})
	}

	matches, err := s.repo.SemanticSearch(ctx, queryEmbedding, req)
	if err != nil {
		return nil, resume.ErrSearchFailed().
			WithDetail("query", req.Query).
			WithDetails(map[string]any{
				"error": err.Error(),
				"top_k": req.TopK,
			})
	}

	return &resume.SearchResumesResponse{
		Results:       matches,
		SearchQuery:   req.Query,
		ExecutionTime: time.Since(startTime).String(),
	}, nil
}

// ============================================================================
// Resume Management
// ============================================================================

// SetDefaultResume sets a resume as the candidate's default
func (s *Service) SetDefaultResume(ctx context.Context, candidateID kernel.CandidateID, resumeID kernel.ResumeID) error {
	resumeModel, err := s.repo.GetByID(ctx, resumeID)
	if err != nil {
		return err
	}

	if resumeModel.CandidateID != candidateID {
		return resume.ErrCandidateMismatch().
			WithDetail("resume_id", resumeID).
			WithDetail("resume_candidate_id", resumeModel.CandidateID).
			WithDetail("requested_candidate_id", candidateID)
	}

	if err := s.repo.SetDefault(ctx, resumeID, candidateID); err != nil {
		return err
	}

	resumeModel.SetAsDefault()
	s.syncCandidateProfile(ctx, resumeModel)
	return nil
}

// ToggleActive activates or deactivates a resume
func (s *Service) ToggleActive(ctx context.Context, resumeID kernel.ResumeID, isActive bool) error {
	return s.repo.ToggleActive(ctx, resumeID, isActive)
}

// RefreshEmbedding regenerates the embedding for a resume
func (s *Service) RefreshEmbedding(ctx context.Context, resumeID kernel.ResumeID) error {
	resumeModel, err := s.repo.GetByID(ctx, resumeID)
	if err != nil {
		return err
	}

	embedding, err := s.generateEmbedding(ctx, resumeModel)
	if err != nil {
		return resume.ErrEmbeddingGenerationFailed().
			WithDetail("resume_id", resumeID).
			WithDetails(map[string]any{"error": err.Error()})
	}

	return s.repo.UpdateEmbedding(ctx, resumeID, embedding)
}

// ============================================================================
// Private Helper Methods
// ============================================================================

func (s *Service) checkResumeLimit(ctx context.Context, candidateID kernel.CandidateID) error {
	count, err := s.repo.CountByCandidateID(ctx, candidateID)
	if err != nil {
		return err
	}
	if count >= MaxResumesPerCandidate {
		return resume.ErrMaxResumesExceeded().
			WithDetail("candidate_id", candidateID).
			WithDetail("current_count", count).
			WithDetail("max_allowed", MaxResumesPerCandidate)
	}
	return nil
}

// buildResume assembles the domain model from a completed parse
func (s *Service) buildResume(parsed *parsing.ParsedResume, req resume.ParseResumeRequest) *resume.Resume {
	now := time.Now()
	return &resume.Resume{
		ID:            kernel.NewResumeID(uuid.NewString()),
		TenantID:      req.TenantID,
		CandidateID:   req.CandidateID,
		Title:         req.Title,
		IsActive:      true,
		IsDefault:     req.IsDefault,
		Parsed:        *parsed,
		Provider:      parsed.Metadata.Provider,
		FileURL:       req.FilePath,
		FileName:      req.FileName,
		FileType:      req.FileType,
		ParsedAt:      parsed.Metadata.ParsedAt,
		LastUpdatedAt: now,
		CreatedAt:     now,
	}
}

// generateEmbedding embeds the flattened profile text. An empty
// profile yields an empty embedding rather than an error.
func (s *Service) generateEmbedding(ctx context.Context, r *resume.Resume) (kernel.ResumeEmbedding, error) {
	text := r.EmbeddingText()
	if text == "" {
		logx.Warnf("No text content available for embedding, resume %s", r.ID)
		return nil, nil
	}

	return s.embedGen.GenerateEmbedding(ctx, text)
}

// unsetOtherDefaults unsets the default flag on the candidate's
// current default resume
func (s *Service) unsetOtherDefaults(ctx context.Context, candidateID kernel.CandidateID) error {
	existing, err := s.repo.GetDefaultByCandidateID(ctx, candidateID)
	if err == nil && existing != nil {
		existing.UnsetAsDefault()
		return s.repo.Update(ctx, existing.ID, existing)
	}
	return nil
}

// syncCandidateProfile pushes a default resume's parsed profile onto
// the owning candidate so matching sees the freshest data. Failures
// are logged, not propagated; the resume itself is already stored.
func (s *Service) syncCandidateProfile(ctx context.Context, r *resume.Resume) {
	if !r.IsDefault {
		return
	}

	owner, err := s.candidates.GetByID(ctx, r.CandidateID)
	if err != nil {
		logx.Errorf("Failed to load candidate %s for profile sync: %v", r.CandidateID, err)
		return
	}

	owner.ApplyParsedProfile(&r.Parsed, r.ID)
	if err := s.candidates.Update(ctx, owner.ID, owner); err != nil {
		logx.Errorf("Failed to sync profile for candidate %s: %v", r.CandidateID, err)
	}
}

package candidatesrv

import (
	"context"

	"github.com/hotgigs/talent/pkg/kernel"
	"github.com/hotgigs/talent/recruitment/candidate"
)

// CandidateService handles candidate profile business logic
type CandidateService struct {
	repo candidate.Repository
}

// NewCandidateService creates a new candidate service
func NewCandidateService(repo candidate.Repository) *CandidateService {
	return &CandidateService{repo: repo}
}

// GetCandidateByID retrieves a candidate by ID
func (s *CandidateService) GetCandidateByID(ctx context.Context, id kernel.CandidateID) (*candidate.CandidateResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return candidate.ToCandidateResponse(c), nil
}

// UpdateCandidate applies a partial update to contact fields
func (s *CandidateService) UpdateCandidate(ctx context.Context, id kernel.CandidateID, req candidate.UpdateCandidateRequest) (*candidate.CandidateResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.FirstName != nil {
		c.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		c.LastName = *req.LastName
	}

	if err := s.repo.Update(ctx, id, c); err != nil {
		return nil, err
	}
	return candidate.ToCandidateResponse(c), nil
}

// ListCandidates retrieves all candidates with pagination
func (s *CandidateService) ListCandidates(ctx context.Context, pagination kernel.PaginationOptions) (*candidate.PaginatedCandidatesResponse, error) {
	paginated, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, err
	}

	items := make([]candidate.CandidateResponse, 0, len(paginated.Items))
	for i := range paginated.Items {
		items = append(items, *candidate.ToCandidateResponse(&paginated.Items[i]))
	}
	return &candidate.PaginatedCandidatesResponse{Items: items, Page: paginated.Page}, nil
}

// ArchiveCandidate archives a candidate account
func (s *CandidateService) ArchiveCandidate(ctx context.Context, id kernel.CandidateID) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := c.Archive(); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, c)
}

// UnarchiveCandidate restores an archived candidate account
func (s *CandidateService) UnarchiveCandidate(ctx context.Context, id kernel.CandidateID) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := c.Unarchive(); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, c)
}

// DeleteCandidate removes a candidate account
func (s *CandidateService) DeleteCandidate(ctx context.Context, id kernel.CandidateID) error {
	return s.repo.Delete(ctx, id)
}

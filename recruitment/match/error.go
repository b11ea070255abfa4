package match

import (
	"net/http"

	"github.com/hotgigs/talent/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("MATCHING")

// Error codes
var (
	CodeCandidateNotFound     = ErrRegistry.Register("CANDIDATE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidate not found")
	CodeJobNotFound           = ErrRegistry.Register("JOB_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeProfileNotParsed      = ErrRegistry.Register("PROFILE_NOT_PARSED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Candidate has no parsed profile")
	CodeNoActiveJobs          = ErrRegistry.Register("NO_ACTIVE_JOBS", errx.TypeBusiness, http.StatusUnprocessableEntity, "No active jobs available for matching")
	CodeNoCandidates          = ErrRegistry.Register("NO_CANDIDATES", errx.TypeBusiness, http.StatusUnprocessableEntity, "No candidates available for matching")
	CodeMatchingFailed        = ErrRegistry.Register("MATCHING_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Match computation failed")
	CodeInvalidMatchingParams = ErrRegistry.Register("INVALID_PARAMS", errx.TypeValidation, http.StatusBadRequest, "Invalid matching parameters")
)

// Helper functions
func ErrCandidateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidateNotFound)
}

func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrProfileNotParsed() *errx.Error {
	return ErrRegistry.New(CodeProfileNotParsed)
}

func ErrNoActiveJobs() *errx.Error {
	return ErrRegistry.New(CodeNoActiveJobs)
}

func ErrNoCandidates() *errx.Error {
	return ErrRegistry.New(CodeNoCandidates)
}

func ErrMatchingFailed() *errx.Error {
	return ErrRegistry.New(CodeMatchingFailed)
}

func ErrInvalidMatchingParams() *errx.Error {
	return ErrRegistry.New(CodeInvalidMatchingParams)
}

package auth

import "strings"

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - Talent platform
// ============================================================================

const (
	// Global scope
	ScopeAll = "*"

	// Job scopes
	ScopeJobsAll     = "jobs:*"
	ScopeJobsRead    = "jobs:read"
	ScopeJobsWrite   = "jobs:write"
	ScopeJobsDelete  = "jobs:delete"
	ScopeJobsPublish = "jobs:publish" // Publish/unpublish jobs
	ScopeJobsArchive = "jobs:archive" // Archive jobs

	// Candidate scopes
	ScopeCandidatesAll    = "candidates:*"
	ScopeCandidatesRead   = "candidates:read"
	ScopeCandidatesWrite  = "candidates:write"
	ScopeCandidatesDelete = "candidates:delete"
	ScopeCandidatesExport = "candidates:export" // Export candidate data

	// Application scopes
	ScopeApplicationsAll     = "applications:*"
	ScopeApplicationsRead    = "applications:read"
	ScopeApplicationsWrite   = "applications:write"
	ScopeApplicationsDelete  = "applications:delete"
	ScopeApplicationsReview  = "applications:review"  // Review/evaluate applications
	ScopeApplicationsApprove = "applications:approve" // Approve/reject applications
	ScopeApplicationsAssign  = "applications:assign"  // Assign to reviewers

	// Resume scopes
	ScopeResumesAll    = "resumes:*"
	ScopeResumesRead   = "resumes:read"
	ScopeResumesWrite  = "resumes:write"
	ScopeResumesDelete = "resumes:delete"
	ScopeResumesParse  = "resumes:parse" // Trigger parsing/reparsing

	// Matching scopes
	ScopeMatchingAll  = "matching:*"
	ScopeMatchingRead = "matching:read"
	ScopeMatchingRun  = "matching:run" // Run match computations

	// Reporting scopes
	ScopeReportsAll  = "reports:*"
	ScopeReportsView = "reports:view"
)

// DomainScopeCategories organizes domain-specific scopes
var DomainScopeCategories = map[string][]string{
	"Jobs": {
		ScopeJobsAll,
		ScopeJobsRead,
		ScopeJobsWrite,
		ScopeJobsDelete,
		ScopeJobsPublish,
		ScopeJobsArchive,
	},
	"Candidates": {
		ScopeCandidatesAll,
		ScopeCandidatesRead,
		ScopeCandidatesWrite,
		ScopeCandidatesDelete,
		ScopeCandidatesExport,
	},
	"Applications": {
		ScopeApplicationsAll,
		ScopeApplicationsRead,
		ScopeApplicationsWrite,
		ScopeApplicationsDelete,
		ScopeApplicationsReview,
		ScopeApplicationsApprove,
		ScopeApplicationsAssign,
	},
	"Resumes": {
		ScopeResumesAll,
		ScopeResumesRead,
		ScopeResumesWrite,
		ScopeResumesDelete,
		ScopeResumesParse,
	},
	"Matching": {
		ScopeMatchingAll,
		ScopeMatchingRead,
		ScopeMatchingRun,
	},
	"Reports": {
		ScopeReportsAll,
		ScopeReportsView,
	},
}

// DomainScopeGroups defines role groupings over domain scopes
var DomainScopeGroups = map[string][]string{
	"recruiter": {
		ScopeJobsRead,
		ScopeJobsWrite,
		ScopeCandidatesAll,
		ScopeApplicationsAll,
		ScopeResumesAll,
		ScopeMatchingAll,
		ScopeReportsView,
	},
	"hiring_manager": {
		ScopeJobsRead,
		ScopeCandidatesRead,
		ScopeApplicationsRead,
		ScopeApplicationsReview,
		ScopeApplicationsApprove,
		ScopeResumesRead,
		ScopeMatchingRead,
		ScopeReportsView,
	},
	"job_manager": {
		ScopeJobsAll,
		ScopeApplicationsRead,
		ScopeApplicationsReview,
		ScopeCandidatesRead,
		ScopeMatchingRead,
		ScopeReportsView,
	},
	"candidate_viewer": {
		ScopeCandidatesRead,
		ScopeApplicationsRead,
		ScopeResumesRead,
		ScopeJobsRead,
	},
	"hr_admin": {
		ScopeJobsAll,
		ScopeCandidatesAll,
		ScopeApplicationsAll,
		ScopeResumesAll,
		ScopeMatchingAll,
		ScopeReportsAll,
	},
}

// ScopeMatches reports whether a granted scope satisfies a required
// scope, honoring the "*" and "category:*" wildcards.
func ScopeMatches(granted, required string) bool {
	if granted == ScopeAll || granted == required {
		return true
	}
	if cat, ok := strings.CutSuffix(granted, ":*"); ok {
		return strings.HasPrefix(required, cat+":")
	}
	return false
}

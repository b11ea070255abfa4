package resume

import (
	"strings"
	"time"

	"github.com/hotgigs/talent/internal/parsing"
	"github.com/hotgigs/talent/pkg/kernel"
)

// Resume represents a parsed resume document with its embedding
type Resume struct {
	ID          kernel.ResumeID    `db:"id" json:"id"`
	TenantID    kernel.TenantID    `db:"tenant_id" json:"tenant_id"`
	CandidateID kernel.CandidateID `db:"candidate_id" json:"candidate_id"`

	Title     string `db:"title" json:"title"`
	IsActive  bool   `db:"is_active" json:"is_active"`
	IsDefault bool   `db:"is_default" json:"is_default"`

	// Parsed is the structured output of the parsing pipeline.
	Parsed parsing.ParsedResume `db:"parsed" json:"parsed"`

	// Provider is the pipeline provider that produced the parse.
	Provider string `db:"provider" json:"provider"`

	// Embedding is a single profile-level vector for semantic search.
	Embedding kernel.ResumeEmbedding `db:"embedding" json:"-"`

	FileURL  string `db:"file_url" json:"file_url"`
	FileName string `db:"file_name" json:"file_name"`
	FileType string `db:"file_type" json:"file_type"`

	ParsedAt      time.Time `db:"parsed_at" json:"parsed_at"`
	LastUpdatedAt time.Time `db:"last_updated_at" json:"last_updated_at"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// Activate sets the resume as active
func (r *Resume) Activate() {
	r.IsActive = true
	r.LastUpdatedAt = time.Now()
}

// Deactivate sets the resume as inactive
func (r *Resume) Deactivate() {
	r.IsActive = false
	r.LastUpdatedAt = time.Now()
}

// SetAsDefault sets the resume as default
func (r *Resume) SetAsDefault() {
	r.IsDefault = true
	r.LastUpdatedAt = time.Now()
}

// UnsetAsDefault removes default status
func (r *Resume) UnsetAsDefault() {
	r.IsDefault = false
	r.LastUpdatedAt = time.Now()
}

// HasEmbedding checks if the resume has been embedded
func (r *Resume) HasEmbedding() bool {
	return len(r.Embedding) > 0
}

// SkillNames returns the names of all extracted skills
func (r *Resume) SkillNames() []string {
	names := make([]string, 0, len(r.Parsed.Skills))
	for _, s := range r.Parsed.Skills {
		names = append(names, s.Name)
	}
	return names
}

// EmbeddingText flattens the parsed profile into the text that feeds
// the embedding model.
func (r *Resume) EmbeddingText() string {
	var parts []string

	if r.Parsed.Summary != "" {
		parts = append(parts, r.Parsed.Summary)
	}
	for _, exp := range r.Parsed.WorkExperience {
		var line []string
		if exp.JobTitle != "" {
			line = append(line, exp.JobTitle)
		}
		if exp.Company != "" {
			line = append(line, "at "+exp.Company)
		}
		if exp.Description != "" {
			line = append(line, exp.Description)
		}
		if len(line) > 0 {
			parts = append(parts, strings.Join(line, " "))
		}
	}
	if skills := r.SkillNames(); len(skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(skills, ", "))
	}
	for _, edu := range r.Parsed.Education {
		var line []string
		if edu.Degree != "" {
			line = append(line, edu.Degree)
		}
		if edu.FieldOfStudy != "" {
			line = append(line, "in "+edu.FieldOfStudy)
		}
		if edu.Institution != "" {
			line = append(line, "from "+edu.Institution)
		}
		if len(line) > 0 {
			parts = append(parts, strings.Join(line, " "))
		}
	}
	if len(r.Parsed.DomainExpertise) > 0 {
		parts = append(parts, "Domains: "+strings.Join(r.Parsed.DomainExpertise, ", "))
	}

	return strings.Join(parts, "\n")
}

// UpdateEmbedding replaces the embedding vector
func (r *Resume) UpdateEmbedding(embedding kernel.ResumeEmbedding) {
	r.Embedding = embedding
	r.LastUpdatedAt = time.Now()
}

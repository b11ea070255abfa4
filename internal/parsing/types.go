// Package parsing converts unstructured resume documents into
// structured candidate profiles. Multiple extraction providers are
// chained so a failure of one strategy degrades to the next instead of
// failing the parse.
package parsing

import "time"

// Proficiency is a skill proficiency level.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "beginner"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyExpert       Proficiency = "expert"
)

var proficiencyRank = map[Proficiency]int{
	ProficiencyBeginner:     1,
	ProficiencyIntermediate: 2,
	ProficiencyAdvanced:     3,
	ProficiencyExpert:       4,
}

// Rank returns the ordinal of the proficiency level, defaulting to
// intermediate for unknown values.
func (p Proficiency) Rank() int {
	if r, ok := proficiencyRank[p]; ok {
		return r
	}
	return proficiencyRank[ProficiencyIntermediate]
}

// PersonalInfo is the candidate's name as found on the resume.
type PersonalInfo struct {
	FullName  string `json:"full_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ContactInfo holds contact coordinates; each field is independently
// optional.
type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Website  string `json:"website"`
	Location string `json:"location"`
}

// IsEmpty reports whether no contact field was found.
func (c ContactInfo) IsEmpty() bool {
	return c.Email == "" && c.Phone == "" && c.LinkedIn == "" &&
		c.GitHub == "" && c.Website == "" && c.Location == ""
}

// Skill is one detected skill mention.
type Skill struct {
	Name             string      `json:"name"`
	Category         string      `json:"category"`
	ProficiencyLevel Proficiency `json:"proficiency_level"`
	MentionedCount   int         `json:"mentioned_count"`
}

// EducationEntry is one education record; any field may be empty.
type EducationEntry struct {
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	Institution  string `json:"institution"`
	Year         string `json:"year"`
}

// ExperienceEntry is one work-history record.
type ExperienceEntry struct {
	JobTitle    string `json:"job_title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// Metadata describes how and how well a parse went. Scores are pure
// functions of the extracted fields.
type Metadata struct {
	Provider          string    `json:"provider"`
	ConfidenceScore   float64   `json:"confidence_score"`
	CompletenessScore float64   `json:"completeness_score"`
	ParsedAt          time.Time `json:"parsed_at"`
	TextLength        int       `json:"text_length"`
}

// ParsedResume is the structured output of the parsing pipeline. All
// top-level keys are always present so consumers only ever check for
// emptiness, never for presence.
type ParsedResume struct {
	PersonalInfo    PersonalInfo      `json:"personal_info"`
	ContactInfo     ContactInfo       `json:"contact_info"`
	Summary         string            `json:"summary"`
	Skills          []Skill           `json:"skills"`
	Education       []EducationEntry  `json:"education"`
	WorkExperience  []ExperienceEntry `json:"work_experience"`
	DomainExpertise []string          `json:"domain_expertise"`
	Metadata        Metadata          `json:"parsing_metadata"`
}

// NewParsedResume returns a resume with all collections initialized so
// the serialized form always carries every key.
func NewParsedResume() *ParsedResume {
	return &ParsedResume{
		Skills:          []Skill{},
		Education:       []EducationEntry{},
		WorkExperience:  []ExperienceEntry{},
		DomainExpertise: []string{},
	}
}

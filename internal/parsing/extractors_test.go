package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSkillsProficiencyFromContext(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Proficiency
	}{
		{"expert context", "Expert in kubernetes orchestration.", ProficiencyExpert},
		{"years implies expert", "Worked with kubernetes for 6 years.", ProficiencyExpert},
		{"intermediate context", "Proficient with kubernetes.", ProficiencyIntermediate},
		{"beginner context", "Basic exposure to kubernetes.", ProficiencyBeginner},
		{"no context defaults intermediate", "Deployed on kubernetes.", ProficiencyIntermediate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills := extractSkills(tt.text, 50)
			for _, s := range skills {
				if s.Name == "Kubernetes" {
					assert.Equal(t, tt.want, s.ProficiencyLevel)
					return
				}
			}
			t.Fatalf("kubernetes not extracted from %q", tt.text)
		})
	}
}

func TestExtractSkillsDeduplicatesAndCounts(t *testing.T) {
	skills := extractSkills("python python python and docker", 50)

	var python *Skill
	for i := range skills {
		require.NotEqualf(t, "", skills[i].Name, "unnamed skill at %d", i)
		if skills[i].Name == "Python" {
			require.Nil(t, python, "python emitted twice")
			python = &skills[i]
		}
	}
	require.NotNil(t, python)
	assert.Equal(t, 3, python.MentionedCount)
	assert.Equal(t, "Programming Languages", python.Category)
}

func TestExtractSkillsCapAndOrdering(t *testing.T) {
	text := "java java java docker sql"
	skills := extractSkills(text, 2)

	require.Len(t, skills, 2)
	// Most-mentioned first.
	assert.Equal(t, "Java", skills[0].Name)
}

func TestExtractContactInfo(t *testing.T) {
	text := `Reach me at john.smith@corp.io or 415-555-0199.
linkedin.com/in/john-smith github.com/jsmith https://johnsmith.dev
Based in San Francisco, CA`

	info := extractContactInfo(text)
	assert.Equal(t, "john.smith@corp.io", info.Email)
	assert.Equal(t, "415-555-0199", info.Phone)
	assert.Equal(t, "linkedin.com/in/john-smith", info.LinkedIn)
	assert.Equal(t, "github.com/jsmith", info.GitHub)
	assert.Equal(t, "https://johnsmith.dev", info.Website)
	assert.Equal(t, "San Francisco, CA", info.Location)
}

func TestExtractContactInfoAbsenceIsNotAnError(t *testing.T) {
	info := extractContactInfo("nothing useful here")
	assert.True(t, info.IsEmpty())
}

func TestExtractEducationSectionPairing(t *testing.T) {
	text := `Education
Master of Science in Engineering
Stanford University
2015
Bachelor of Arts
Williams College
2012

Skills
Python`

	entries := extractEducation(text)
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Degree, "Master of Science")
	assert.Equal(t, "Stanford University", entries[0].Institution)
	assert.Equal(t, "2015", entries[0].Year)
	assert.Equal(t, "2012", entries[1].Year)
}

func TestExtractExperienceSection(t *testing.T) {
	text := `Work Experience
Senior Software Engineer
Initech Solutions
2018 - 2021
Built billing pipelines.
Led a team of four.

Education
BS in Computer Science`

	entries := extractExperience(text)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "Senior Software Engineer", e.JobTitle)
	assert.Equal(t, "Initech Solutions", e.Company)
	assert.Equal(t, "2018 - 2021", e.Duration)
	assert.Equal(t, "2018", e.StartDate)
	assert.Equal(t, "2021", e.EndDate)
	assert.Contains(t, e.Description, "billing pipelines")
}

func TestExtractExperiencePresentRange(t *testing.T) {
	text := `Experience
Data Analyst
2020 - Present`

	entries := extractExperience(text)
	require.Len(t, entries, 1)
	assert.Equal(t, "2020", entries[0].StartDate)
	assert.Equal(t, "Present", entries[0].EndDate)
}

func TestExtractSummaryHeaderAndFallback(t *testing.T) {
	withHeader := `Jane Doe
Professional Summary
Seasoned platform engineer.
Focused on reliability.
Experience
...`
	assert.Equal(t, "Seasoned platform engineer. Focused on reliability.", extractSummary(withHeader))

	noHeader := "Seasoned platform engineer with a decade of distributed systems work."
	assert.Equal(t, noHeader, extractSummary(noHeader))
}

func TestExtractDomainsThresholds(t *testing.T) {
	text := "software development programming" // three technology keywords

	strict := extractDomains(text, strictDomainKeywords, strictDomainOrder, 2, 0)
	assert.Contains(t, strict, "technology")

	// One finance keyword is below the strict threshold.
	strict = extractDomains("finance only", strictDomainKeywords, strictDomainOrder, 2, 0)
	assert.NotContains(t, strict, "finance")

	loose := extractDomains("finance only", looseDomainKeywords, looseDomainOrder, 1, 3)
	assert.Contains(t, loose, "finance")
	assert.LessOrEqual(t, len(loose), 3)
}

func TestCompletenessMonotonicity(t *testing.T) {
	r := NewParsedResume()
	scores := []float64{computeCompleteness(r)}

	r.PersonalInfo.FullName = "Jane Doe"
	scores = append(scores, computeCompleteness(r))
	r.ContactInfo.Email = "jane@example.com"
	scores = append(scores, computeCompleteness(r))
	r.Skills = []Skill{{Name: "Python"}}
	scores = append(scores, computeCompleteness(r))
	r.Education = []EducationEntry{{Degree: "BS"}}
	scores = append(scores, computeCompleteness(r))
	r.WorkExperience = []ExperienceEntry{{JobTitle: "Engineer"}}
	scores = append(scores, computeCompleteness(r))
	r.Summary = "Engineer."
	scores = append(scores, computeCompleteness(r))

	for i := 1; i < len(scores); i++ {
		assert.Greater(t, scores[i], scores[i-1])
	}
	assert.Equal(t, 1.0, scores[len(scores)-1])
}

func TestComputeConfidenceWeights(t *testing.T) {
	r := NewParsedResume()
	assert.Equal(t, 0.0, computeConfidence(r))

	r.PersonalInfo.FullName = "Jane Doe"
	r.ContactInfo.Email = "jane@example.com"
	assert.Equal(t, 0.3, computeConfidence(r))

	r.ContactInfo.Phone = "555-123-4567"
	r.Skills = []Skill{{}, {}} // two skills earn the half point
	assert.Equal(t, 0.5, computeConfidence(r))

	r.Skills = []Skill{{}, {}, {}, {}, {}}
	r.Education = []EducationEntry{{}}
	r.WorkExperience = []ExperienceEntry{{}}
	assert.Equal(t, 1.0, computeConfidence(r))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Sql", titleCase("sql"))
	assert.Equal(t, "Node.js", titleCase("node.js"))
	assert.Equal(t, "Machine Learning", titleCase("machine learning"))
	assert.Equal(t, "Ui/Ux", titleCase("ui/ux"))
}

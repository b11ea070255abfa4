package matching

import (
	"fmt"
	"strings"
)

// stopWords are excluded from keyword-overlap similarity.
var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true, "in": true,
	"on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true,
}

// scoreSemantic measures free-text similarity between the candidate's
// profile and the job posting. A fitted model gives TF-IDF cosine
// similarity; otherwise keyword overlap stands in.
func scoreSemantic(model *tfidfModel, candidate *CandidateProfile, job *JobPosting) SemanticScore {
	candText := candidateText(candidate)
	jobText := jobText(job)

	if candText == "" || jobText == "" {
		return SemanticScore{Score: 0.0, Details: "Insufficient text data"}
	}

	if model != nil {
		similarity := cosine(model.vectorize(candText), model.vectorize(jobText))
		return SemanticScore{
			Score:   round3(similarity),
			Method:  "tfidf_cosine",
			Details: fmt.Sprintf("TF-IDF cosine similarity: %.3f", similarity),
		}
	}

	similarity := keywordSimilarity(candText, jobText)
	return SemanticScore{
		Score:   round3(similarity),
		Method:  "keyword_based",
		Details: fmt.Sprintf("Keyword-based similarity: %.3f", similarity),
	}
}

// candidateText concatenates the candidate's prose and keyword fields
// for similarity analysis.
func candidateText(c *CandidateProfile) string {
	var parts []string

	if c.Summary != "" {
		parts = append(parts, c.Summary)
	}
	for _, exp := range c.WorkExperience {
		if exp.Description != "" {
			parts = append(parts, exp.Description)
		}
		if exp.JobTitle != "" {
			parts = append(parts, exp.JobTitle)
		}
	}
	for _, skill := range c.Skills {
		if skill.Name != "" {
			parts = append(parts, skill.Name)
		}
	}
	for _, edu := range c.Education {
		if edu.FieldOfStudy != "" {
			parts = append(parts, edu.FieldOfStudy)
		}
		if edu.Degree != "" {
			parts = append(parts, edu.Degree)
		}
	}

	return strings.Join(parts, " ")
}

// jobText concatenates the posting's prose and keyword fields for
// similarity analysis.
func jobText(j *JobPosting) string {
	var parts []string

	if j.Title != "" {
		parts = append(parts, j.Title)
	}
	if j.Description != "" {
		parts = append(parts, j.Description)
	}
	if j.Requirements != "" {
		parts = append(parts, j.Requirements)
	}
	for _, skill := range j.RequiredSkills {
		if skill.Name != "" {
			parts = append(parts, skill.Name)
		}
	}
	if j.Industry != "" {
		parts = append(parts, j.Industry)
	}

	return strings.Join(parts, " ")
}

// keywordSimilarity is the Jaccard overlap of stop-word-filtered
// token sets.
func keywordSimilarity(text1, text2 string) float64 {
	words1 := contentWords(text1)
	words2 := contentWords(text2)
	if len(words1) == 0 || len(words2) == 0 {
		return 0.0
	}

	intersection := 0
	for w := range words1 {
		if words2[w] {
			intersection++
		}
	}
	union := len(words1) + len(words2) - intersection

	return float64(intersection) / float64(union)
}

func contentWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if !stopWords[w] {
			words[w] = true
		}
	}
	return words
}

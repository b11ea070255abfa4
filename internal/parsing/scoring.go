package parsing

import "math"

// computeConfidence scores how reliable a parse looks from which
// fields were populated. Name, education and experience each
// contribute a full point, contact info splits one point between email
// and phone, and the skills point is granted in full at five skills or
// halved at two.
func computeConfidence(r *ParsedResume) float64 {
	score := 0.0
	const maxScore = 5.0

	if r.PersonalInfo.FullName != "" {
		score += 1.0
	}
	if r.ContactInfo.Email != "" {
		score += 0.5
	}
	if r.ContactInfo.Phone != "" {
		score += 0.5
	}
	switch {
	case len(r.Skills) >= 5:
		score += 1.0
	case len(r.Skills) >= 2:
		score += 0.5
	}
	if len(r.Education) > 0 {
		score += 1.0
	}
	if len(r.WorkExperience) > 0 {
		score += 1.0
	}
	return round2(score / maxScore)
}

// computeCompleteness is the fraction of the six major sections that
// came back non-empty. Contact counts when either email or phone was
// found.
func computeCompleteness(r *ParsedResume) float64 {
	const totalSections = 6.0
	completed := 0.0

	if r.PersonalInfo.FullName != "" {
		completed++
	}
	if r.ContactInfo.Email != "" || r.ContactInfo.Phone != "" {
		completed++
	}
	if len(r.Skills) > 0 {
		completed++
	}
	if len(r.Education) > 0 {
		completed++
	}
	if len(r.WorkExperience) > 0 {
		completed++
	}
	if r.Summary != "" {
		completed++
	}
	return round2(completed / totalSections)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

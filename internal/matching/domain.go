package matching

import (
	"fmt"
	"strings"
)

// domainCompatibility maps a job's industry to candidate domains that
// transfer well into it.
var domainCompatibility = map[string][]string{
	"technology":    {"technology", "finance", "healthcare", "education", "e-commerce"},
	"finance":       {"finance", "banking", "technology", "consulting"},
	"healthcare":    {"healthcare", "technology", "consulting"},
	"education":     {"education", "technology", "government"},
	"retail":        {"retail", "e-commerce", "technology"},
	"manufacturing": {"manufacturing", "technology", "consulting"},
	"consulting":    {"consulting", "technology", "finance", "healthcare"},
	"government":    {"government", "technology", "defense"},
	"defense":       {"defense", "government", "technology"},
	"banking":       {"banking", "finance", "technology"},
	"automobile":    {"automobile", "manufacturing", "technology"},
	"e-commerce":    {"e-commerce", "retail", "technology"},
}

// scoreDomain compares the candidate's domain expertise with the
// job's industry. Missing data scores neutral rather than zero.
func scoreDomain(candidate *CandidateProfile, job *JobPosting) DomainScore {
	industry := strings.ToLower(job.Industry)

	if len(candidate.DomainExpertise) == 0 || industry == "" {
		return DomainScore{Score: 0.5, Details: "Insufficient domain data"}
	}

	for _, domain := range candidate.DomainExpertise {
		if strings.ToLower(domain) == industry {
			return DomainScore{
				Score:         1.0,
				MatchType:     "direct",
				MatchedDomain: industry,
				Details:       fmt.Sprintf("Direct domain match: %s", industry),
			}
		}
	}

	compatible := domainCompatibility[industry]
	for _, domain := range candidate.DomainExpertise {
		lower := strings.ToLower(domain)
		for _, c := range compatible {
			if lower == c {
				return DomainScore{
					Score:         0.7,
					MatchType:     "compatible",
					MatchedDomain: domain,
					Details:       fmt.Sprintf("Compatible domain: %s -> %s", domain, industry),
				}
			}
		}
	}

	return DomainScore{
		Score:     0.3,
		MatchType: "none",
		Details:   "No domain expertise match",
	}
}

package matching

import (
	"fmt"
	"strings"
)

// scoreLocation compares candidate and job locations. Remote jobs
// match everyone; shared city or state tokens count as compatible.
func scoreLocation(candidate *CandidateProfile, job *JobPosting) LocationScore {
	if job.RemoteOK {
		return LocationScore{
			Score:     1.0,
			MatchType: "remote",
			Details:   "Remote work available",
		}
	}

	candidateLoc := strings.ToLower(candidate.ContactInfo.Location)
	jobLoc := strings.ToLower(job.Location)

	if candidateLoc == "" || jobLoc == "" {
		return LocationScore{Score: 0.5, Details: "Insufficient location data"}
	}

	if candidateLoc == jobLoc {
		return LocationScore{
			Score:     1.0,
			MatchType: "exact",
			Details:   fmt.Sprintf("Exact location match: %s", jobLoc),
		}
	}

	if locationsCompatible(candidateLoc, jobLoc) {
		return LocationScore{
			Score:     0.8,
			MatchType: "compatible",
			Details:   fmt.Sprintf("Compatible locations: %s / %s", candidateLoc, jobLoc),
		}
	}

	return LocationScore{
		Score:     0.2,
		MatchType: "different",
		Details:   fmt.Sprintf("Different locations: %s / %s", candidateLoc, jobLoc),
	}
}

// locationsCompatible checks for any shared token after splitting on
// commas and whitespace.
func locationsCompatible(loc1, loc2 string) bool {
	parts1 := locationTokens(loc1)
	for token := range locationTokens(loc2) {
		if parts1[token] {
			return true
		}
	}
	return false
}

func locationTokens(loc string) map[string]bool {
	tokens := make(map[string]bool)
	for _, token := range strings.Fields(strings.ReplaceAll(loc, ",", " ")) {
		tokens[token] = true
	}
	return tokens
}

package parsing

import (
	"regexp"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe    = regexp.MustCompile(`\b(?:\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`)
	linkedinRe = regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+`)
	githubRe   = regexp.MustCompile(`(?i)github\.com/[\w-]+`)
	websiteRe  = regexp.MustCompile(`(?i)(?:https?://|www\.)[^\s]+`)
	locationRe = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)*,\s?[A-Z]{2}\b`)
)

// extractContactInfo regex-extracts contact coordinates. Each field
// keeps its first match only; absence is not an error.
func extractContactInfo(text string) ContactInfo {
	info := ContactInfo{
		Email:    emailRe.FindString(text),
		Phone:    phoneRe.FindString(text),
		LinkedIn: linkedinRe.FindString(text),
		GitHub:   githubRe.FindString(text),
		Location: locationRe.FindString(text),
	}

	// First URL that is not the LinkedIn or GitHub profile.
	for _, url := range websiteRe.FindAllString(text, -1) {
		lower := strings.ToLower(url)
		if strings.Contains(lower, "linkedin.com") || strings.Contains(lower, "github.com") {
			continue
		}
		info.Website = url
		break
	}
	return info
}

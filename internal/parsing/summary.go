package parsing

import (
	"strings"
	"unicode/utf8"
)

var summaryHeaders = []string{
	"summary", "professional summary", "objective", "profile",
	"about", "overview", "introduction", "career objective",
}

var summaryExitHeaders = []string{"experience", "education", "skills"}

// maxSummaryLength bounds the stored summary.
const maxSummaryLength = 500

// extractSummary takes the lines under a summary-type header, or the
// first paragraph longer than 50 characters when no header exists.
func extractSummary(text string) string {
	if s := sectionText(text, summaryHeaders, summaryExitHeaders); s != "" {
		return truncate(strings.Join(strings.Fields(s), " "), maxSummaryLength)
	}

	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if len(paragraph) > 50 {
			return truncate(paragraph, maxSummaryLength)
		}
	}
	return ""
}

// truncate cuts s to at most max bytes without splitting a rune.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

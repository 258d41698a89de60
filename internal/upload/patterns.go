package upload

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	timePattern  = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(AM|PM|am|pm)?\b`)
)

var meetingKeywords = []string{"meeting", "call", "conference", "discussion", "presentation"}
var professionalWords = []string{"regards", "sincerely", "best", "thank you", "please", "kindly"}

// extractPatterns derives superficial communication patterns from file
// content: email addresses, time references, and keyword frequencies.
func extractPatterns(content string) []string {
	var patterns []string

	if emails := emailPattern.FindAllString(content, -1); len(emails) > 0 {
		patterns = append(patterns, fmt.Sprintf("Email communication pattern detected (%d addresses)", len(emails)))
	}

	if times := timePattern.FindAllString(content, -1); len(times) > 0 {
		patterns = append(patterns, fmt.Sprintf("Time references found (%d instances)", len(times)))
	}

	lower := strings.ToLower(content)

	if meetingCount := countOccurrences(lower, meetingKeywords); meetingCount > 0 {
		patterns = append(patterns, fmt.Sprintf("Meeting-related content detected (%d references)", meetingCount))
	}

	if professionalCount := countOccurrences(lower, professionalWords); professionalCount > 0 {
		patterns = append(patterns, fmt.Sprintf("Professional communication style (%d formal expressions)", professionalCount))
	}

	if len(patterns) > 5 {
		patterns = patterns[:5]
	}
	return patterns
}

func countOccurrences(content string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		count += strings.Count(content, kw)
	}
	return count
}

package rules

import "strings"

// Keyword severities
const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
)

// KeywordMatch is one crisis keyword found in a piece of text.
type KeywordMatch struct {
	Keyword  string `json:"keyword"`
	Severity string `json:"severity"`
}

// crisisKeywords maps trigger phrases to severity. Phrases are matched
// case-insensitively; multi-word phrases match as substrings, single words
// must stand on their own word boundary so "skill" never matches "kill".
var crisisKeywords = []KeywordMatch{
	{"suicide", SeverityHigh},
	{"suicidal", SeverityHigh},
	{"kill myself", SeverityHigh},
	{"end my life", SeverityHigh},
	{"self-harm", SeverityHigh},
	{"self harm", SeverityHigh},
	{"overdose", SeverityHigh},
	{"want to die", SeverityHigh},
	{"better off dead", SeverityHigh},
	{"hurting myself", SeverityMedium},
	{"hurt myself", SeverityMedium},
	{"hopeless", SeverityMedium},
	{"can't go on", SeverityMedium},
	{"no reason to live", SeverityMedium},
	{"give up on everything", SeverityMedium},
}

// DetectCrisis scans free text for crisis keywords. It returns whether any
// keyword matched plus the full list of matches in keyword-table order.
func DetectCrisis(text string) (bool, []KeywordMatch) {
	if strings.TrimSpace(text) == "" {
		return false, nil
	}

	lower := strings.ToLower(text)
	var matches []KeywordMatch
	for _, kw := range crisisKeywords {
		if containsPhrase(lower, kw.Keyword) {
			matches = append(matches, kw)
		}
	}
	return len(matches) > 0, matches
}

// containsPhrase reports whether phrase occurs in text. Single-word phrases
// must be delimited by non-letter characters on both sides.
func containsPhrase(text, phrase string) bool {
	if strings.ContainsAny(phrase, " -'") {
		return strings.Contains(text, phrase)
	}

	idx := 0
	for {
		i := strings.Index(text[idx:], phrase)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(phrase)
		if (start == 0 || !isWordChar(text[start-1])) && (end == len(text) || !isWordChar(text[end])) {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// MaxSeverity returns the highest severity among matches, or "" when empty.
func MaxSeverity(matches []KeywordMatch) string {
	severity := ""
	for _, m := range matches {
		if m.Severity == SeverityHigh {
			return SeverityHigh
		}
		severity = m.Severity
	}
	return severity
}

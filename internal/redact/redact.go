// Package redact masks PII-like substrings before text is stored, delivered
// or logged. Masking is pure text transformation: no state, no errors, and
// redacting already-redacted text is a no-op.
package redact

import "regexp"

// Placeholder tokens inserted in place of matched substrings.
const (
	HiddenToken = "[hidden]"
	EmailToken  = "[email]"
)

// phonePatterns is the ordered rule list for phone-number-like substrings.
// Order matters: the wider international forms run before the narrower
// grouped ones so a match is consumed whole rather than in fragments.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\+?\d{1,4}[-.\s]?\d{10,}`),            // international
	regexp.MustCompile(`\d{10,}`),                             // plain 10+ digits
	regexp.MustCompile(`\(\d{3}\)\s?\d{3}-?\d{4}`),            // US (123) 456-7890
	regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),       // 123-456-7890
	regexp.MustCompile(`\+91[-.\s]?\d{10}`),                   // +91-9876543210
	regexp.MustCompile(`91[-.\s]?\d{10}`),                     // 91 9876543210
	regexp.MustCompile(`\d{5}[-.\s]?\d{5}`),                   // 5-5 grouping
	regexp.MustCompile(`\d{4}[-.\s]?\d{3}[-.\s]?\d{3}`),       // 4-3-3 grouping
	regexp.MustCompile(`\d{2}[-.\s]?\d{4}[-.\s]?\d{4}`),       // 2-4-4 grouping
}

// digitRun catches any 8+ contiguous digit run the pattern list missed.
var digitRun = regexp.MustCompile(`\b\d{8,}\b`)

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// Phone replaces phone-number-like substrings with the hidden token.
// Unmatched text passes through unchanged.
func Phone(text string) string {
	if text == "" {
		return text
	}
	masked := text
	for _, p := range phonePatterns {
		masked = p.ReplaceAllString(masked, HiddenToken)
	}
	return digitRun.ReplaceAllString(masked, HiddenToken)
}

// ForLog sanitizes text for log output. Phone masking is always applied here
// regardless of the sender's preference, and email-like substrings are masked
// too. Never use the result as delivered content.
func ForLog(text string) string {
	if text == "" {
		return text
	}
	return emailPattern.ReplaceAllString(Phone(text), EmailToken)
}

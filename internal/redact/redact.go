// Package redact removes credentials from strings before they are logged.
// Error messages in this service routinely embed sink URLs, which carry the
// customer token in their path, and signed storage requests, which carry
// access key IDs and signatures.
package redact

import (
	"regexp"
)

// Redaction placeholders.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedTokenPlaceholder      = "[REDACTED_TOKEN]"
	RedactedSignaturePlaceholder  = "[REDACTED_SIGNATURE]"
)

type rule struct {
	pattern *regexp.Regexp
	// replacement may reference capture groups.
	replacement string
}

// Rules are applied in order; earlier rules see the original text.
var rules = []rule{
	// Sink bulk and input endpoints: /bulk/<token>/ and /inputs/<token>/.
	{
		pattern:     regexp.MustCompile(`(/(?:bulk|inputs)/)[A-Za-z0-9-]{8,}`),
		replacement: "${1}" + RedactedTokenPlaceholder,
	},
	// SigV4 Authorization header contents.
	{
		pattern:     regexp.MustCompile(`(Credential=)[^,\s&]+`),
		replacement: "${1}" + RedactedCredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)((?:X-Amz-)?Signature=)[0-9a-f]{16,}`),
		replacement: "${1}" + RedactedSignaturePlaceholder,
	},
	// Presigned query credentials and session tokens.
	{
		pattern:     regexp.MustCompile(`(?i)(X-Amz-(?:Credential|Security-Token)=)[^&\s]+`),
		replacement: "${1}" + RedactedCredentialPlaceholder,
	},
	// AWS access key IDs.
	{
		pattern:     regexp.MustCompile(`\b(?:AKIA|ASIA)[A-Z0-9]{16}\b`),
		replacement: RedactedKeyPlaceholder,
	},
	// key=value style secrets.
	{
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd|secret(?:[_-]?access)?[_-]?key|secret|token|api[_-]?key)(\s*[=:]\s*['"]?)[^'"&\s,]{3,}`),
		replacement: "${1}${2}" + RedactionPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

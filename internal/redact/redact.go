// Package redact strips credentials, tokens, SQL and file paths from error
// text before it is written to logs.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules run in order. JWTs go first so the key rule does not eat half a token.
var rules = []rule{
	{
		regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		RedactedJWTPlaceholder,
	},
	{
		// user:password@ in postgres:// and similar DSNs
		regexp.MustCompile(`(?i)\b(postgres(?:ql)?|sqlite|file|db)://[^@\s]+@`),
		"$1://" + RedactedCredentialPlaceholder + "@",
	},
	{
		regexp.MustCompile(`(?i)\b(password|passwd|pwd)(\s*[=:]\s*)['"]?[^'"&\s]+`),
		"$1$2" + RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(bearer)\s+[A-Za-z0-9_\-.~+/=]{8,}`),
		"$1 " + RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)\b(secret|token|api[_-]?key)(\s*[=:]\s*)['"]?[A-Za-z0-9_\-.~+/]{8,}`),
		"$1$2" + RedactedKeyPlaceholder,
	},
	{
		regexp.MustCompile(`(?is)\b(SELECT|INSERT|UPDATE|DELETE)\b.*?\b(FROM|INTO|SET|WHERE)\b[^:;]*`),
		RedactedSQLPlaceholder,
	},
	{
		regexp.MustCompile(`(?:/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
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

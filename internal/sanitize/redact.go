package sanitize

import "regexp"

// secretPattern replaces one kind of credential with a placeholder.
type secretPattern struct {
	name        string
	re          *regexp.Regexp
	replacement string
}

// secretPatterns are applied in order by Redact. Skill descriptions and
// paths come from files anyone can drop into a local skill root, so
// command lines built from them are redacted before they reach a log.
var secretPatterns = []secretPattern{
	{
		name:        "aws access key",
		re:          regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		replacement: "[AWS_ACCESS_KEY_REDACTED]",
	},
	{
		name:        "aws secret key",
		re:          regexp.MustCompile(`(?i)(aws_secret_access_key|secret_access_key)\s*[=:]\s*\S+`),
		replacement: "$1=[AWS_SECRET_REDACTED]",
	},
	{
		name:        "jwt",
		re:          regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`),
		replacement: "[JWT_REDACTED]",
	},
	{
		name:        "slack token",
		re:          regexp.MustCompile(`xox[baprs]-[0-9a-zA-Z-]+`),
		replacement: "[SLACK_TOKEN_REDACTED]",
	},
	{
		name:        "github token",
		re:          regexp.MustCompile(`(ghp|gho|ghs|ghu)_[A-Za-z0-9]{36}|github_pat_[A-Za-z0-9_]{22,}`),
		replacement: "[GITHUB_TOKEN_REDACTED]",
	},
	{
		name:        "pem block",
		re:          regexp.MustCompile(`-----BEGIN [A-Z ]+-----[\s\S]+?-----END [A-Z ]+-----`),
		replacement: "[PEM_BLOCK_REDACTED]",
	},
	{
		name:        "bearer token",
		re:          regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._-]{20,}`),
		replacement: "Bearer [TOKEN_REDACTED]",
	},
	{
		name:        "basic auth",
		re:          regexp.MustCompile(`(?i)basic\s+[A-Za-z0-9+/=]{20,}`),
		replacement: "Basic [CREDENTIALS_REDACTED]",
	},
	{
		name:        "private key",
		re:          regexp.MustCompile(`(?i)(private[_-]?key)\s*[=:]\s*\S+`),
		replacement: "$1=[PRIVATE_KEY_REDACTED]",
	},
	{
		name:        "generic secret",
		re:          regexp.MustCompile(`(?i)(password|passwd|token|secret|api[_-]?key)\s*[=:]\s*\S+`),
		replacement: "$1=[REDACTED]",
	},
}

// Redact replaces credentials found in s with placeholders. It is best
// effort: anything that does not look like a known credential is kept.
func Redact(s string) string {
	if s == "" {
		return s
	}
	for _, p := range secretPatterns {
		s = p.re.ReplaceAllString(s, p.replacement)
	}
	return s
}

// RedactAll applies Redact to each element of values.
func RedactAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Redact(v)
	}
	return out
}

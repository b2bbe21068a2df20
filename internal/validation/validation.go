package validation

import (
	"net/url"
	"strings"
)

// maxFieldLength bounds free-text fields such as link names.
const maxFieldLength = 500

// NormalizeCredentials trims surrounding whitespace from an email and password.
func NormalizeCredentials(email, password string) (string, string) {
	return strings.TrimSpace(email), strings.TrimSpace(password)
}

// ValidateEmail performs a minimal shape check: one "@" with text on both sides.
func ValidateEmail(email string) bool {
	local, domain, ok := strings.Cut(email, "@")
	return ok && local != "" && domain != "" && !strings.Contains(domain, "@") && len(email) <= maxFieldLength
}

// ValidateName checks a link name is present and of reasonable length.
func ValidateName(name string) bool {
	return name != "" && len(name) <= maxFieldLength
}

// ValidateURL accepts absolute http and https links with a host. The second
// return value describes the first failed check.
func ValidateURL(raw string) (bool, string) {
	if raw == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(raw)
	switch {
	case err != nil:
		return false, "Invalid URL format"
	case !strings.EqualFold(u.Scheme, "http") && !strings.EqualFold(u.Scheme, "https"):
		return false, "URL must use http:// or https:// scheme"
	case u.Host == "":
		return false, "URL must have a valid host"
	}
	return true, ""
}

// likeEscaper escapes the LIKE wildcards and the escape character itself.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes s for use inside a LIKE pattern with ESCAPE '\'.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// ContainsPattern returns a case-folded LIKE pattern matching any value that
// contains s as a literal substring.
func ContainsPattern(s string) string {
	return "%" + EscapeLike(strings.ToLower(s)) + "%"
}

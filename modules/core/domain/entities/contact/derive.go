package contact

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsPlausibleEmail reports whether a login handle can serve as a contact
// email. It is a syntactic check only; no delivery verification happens.
func IsPlausibleEmail(handle string) bool {
	return emailPattern.MatchString(strings.TrimSpace(handle))
}

// DeriveDisplayName builds a best-effort name from an email local part:
// separators become spaces, an empty result falls back to "Administrator".
// Kept pure so the heuristic stays independently testable.
func DeriveDisplayName(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at >= 0 {
		local = email[:at]
	}
	name := strings.NewReplacer("_", " ", ".", " ", "-", " ").Replace(local)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "Administrator"
	}
	return name
}

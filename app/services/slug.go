package services

import "strings"

// Slugify converts a human-readable name into a URL-safe slug: lowercase,
// runs of non-alphanumeric characters collapsed into a single hyphen,
// leading and trailing hyphens trimmed.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastDash := true // suppress a leading dash
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

package common

import "strings"

// FileSlug turns a display name into a safe file name part:
// spaces become underscores and anything outside [A-Za-z0-9_-] is dropped.
func FileSlug(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r == ' ':
			b.WriteRune('_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "data"
	}
	return b.String()
}

// Distinct trims the values and drops empty items and duplicates,
// keeping the first occurrence.
func Distinct(values []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, item := range values {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

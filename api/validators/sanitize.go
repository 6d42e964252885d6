package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the length when
// maxLen is positive.
func SanitizeString(input string, maxLen int) string {
	out := strings.TrimSpace(input)
	if maxLen > 0 && len(out) > maxLen {
		out = out[:maxLen]
	}
	return out
}

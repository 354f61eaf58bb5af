// Package utils provides utility functions for the application.
package utils

func ToPtr[T any](v T) *T {
	return &v
}

func IsTrue(b *bool) bool {
	return b != nil && *b
}

// TruncateString shortens s to max runes and marks the cut with an ellipsis.
func TruncateString(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// CollapseWhitespace folds runs of spaces, tabs and newlines into single
// spaces and trims the result.
func CollapseWhitespace(s string) string {
	out := make([]rune, 0, len(s))
	inSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			inSpace = true
			continue
		}
		if inSpace && len(out) > 0 {
			out = append(out, ' ')
		}
		inSpace = false
		out = append(out, r)
	}
	return string(out)
}

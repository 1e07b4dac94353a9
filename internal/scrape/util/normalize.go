package util

import "strings"

// CleanText trims s and collapses every whitespace run to one space.
// strings.Fields splits on unicode.IsSpace, which covers U+00A0.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ContainsAny reports whether s contains any non-empty needle. Case-sensitive.
func ContainsAny(s string, needles []string) bool {
	for _, n := range needles {
		if n == "" {
			continue
		}
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

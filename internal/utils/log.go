package utils

import "strings"

// TruncateForLog collapses whitespace runs into single spaces so multi-line
// payloads stay on one log line, then cuts the result to limit runes with an
// ellipsis.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

package util

import "strings"

// SanitizeText strips invalid UTF-8 sequences and NUL bytes. Parsed
// document text passes through here before it reaches Postgres, which
// rejects NUL in text columns.
func SanitizeText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}

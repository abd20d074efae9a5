package util

import (
	"regexp"
	"strings"
)

// Splits "FilesModified" into "Files", "Modified" and "ID" into "I", "D".
var camelRegex = regexp.MustCompile("[A-Z]?[a-z0-9]+|[A-Z]")

// CamelToSnakeCase maps Go field names to journal column names.
func CamelToSnakeCase(str string) string {
	matches := camelRegex.FindAllString(str, -1)

	for i, match := range matches {
		matches[i] = strings.ToLower(match)
	}

	return strings.Join(matches, "_")
}

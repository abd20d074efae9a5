package domain

import (
	"regexp"
	"strconv"
	"strings"
)

const defaultDirectiveIndent = "    "

var (
	rotatePattern   = regexp.MustCompile(`\brotate[ \t]+\d+\.?[0-9]*`)
	intervalPattern = regexp.MustCompile(`(?m)^([ \t]*)(?:daily|weekly|monthly|yearly)[ \t]*$`)
	sizePattern     = regexp.MustCompile(`(?m)^([ \t]*)size[ \t]+\S+[ \t]*$`)
)

// SplitEntries cuts logrotate content into stanzas. A stanza ends on the
// first line containing a closing brace; it is trimmed and prefixed with a
// single newline. Anything after the last closing brace is dropped.
func SplitEntries(content string) []string {
	var entries []string
	var buf strings.Builder

	for _, line := range strings.Split(content, "\n") {
		buf.WriteString(line)
		buf.WriteString("\n")

		if strings.Contains(line, "}") {
			entries = append(entries, "\n"+strings.TrimSpace(buf.String()))
			buf.Reset()
		}
	}

	return entries
}

// SetRotate rewrites every rotate directive of the entry to count, or adds
// one before the closing brace when the entry has none.
func SetRotate(entry string, count int) string {
	directive := "rotate " + strconv.Itoa(count)

	if rotatePattern.MatchString(entry) {
		return rotatePattern.ReplaceAllLiteralString(entry, directive)
	}

	closing := strings.LastIndex(entry, "}")
	if closing < 0 {
		return entry
	}

	indent := directiveIndent(entry)
	lineStart := strings.LastIndex(entry[:closing], "\n") + 1

	if strings.TrimSpace(entry[lineStart:closing]) == "" {
		return entry[:lineStart] + indent + directive + "\n" + entry[lineStart:]
	}

	// closing brace shares its line with a directive
	return strings.TrimRight(entry[:closing], " \t") + "\n" + indent + directive + "\n" + entry[closing:]
}

// directiveIndent returns the indentation of the first directive after the
// opening line of the entry.
func directiveIndent(entry string) string {
	lines := strings.Split(entry, "\n")

	opened := false
	for _, line := range lines {
		if !opened {
			opened = strings.Contains(line, "{")
			continue
		}

		if strings.TrimSpace(line) == "" || strings.Contains(line, "}") {
			continue
		}

		return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	}

	return defaultDirectiveIndent
}

// ReplaceSize turns every interval and size directive into `size <size>`.
func ReplaceSize(content, size string) string {
	replacement := "${1}size " + escapeTemplate(size)

	content = intervalPattern.ReplaceAllString(content, replacement)
	return sizePattern.ReplaceAllString(content, replacement)
}

// ReplaceInterval turns every interval and size directive into interval.
func ReplaceInterval(content, interval string) string {
	replacement := "${1}" + escapeTemplate(interval)

	content = intervalPattern.ReplaceAllString(content, replacement)
	return sizePattern.ReplaceAllString(content, replacement)
}

func escapeTemplate(s string) string {
	return strings.Replace(s, "$", "$$", -1)
}

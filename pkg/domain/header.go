package domain

import "strings"

const Banner = "# Configuration file maintained by logrotator. Local changes may be overwritten"

// ModifyHeader makes Banner the one and only first line of content.
func ModifyHeader(content string) string {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		if line == Banner {
			continue
		}
		kept = append(kept, line)
	}

	for len(kept) > 0 && strings.TrimSpace(kept[0]) == "" {
		kept = kept[1:]
	}

	return Banner + "\n" + strings.Join(kept, "\n")
}

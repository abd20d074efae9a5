package domain

import (
	"math"
	"strings"
)

// CalculateCount returns the number of rotated logs to keep so that an entry
// rotated at its interval covers retentionDays days.
//
// The interval is detected by substring, checked in the order
// daily, weekly, monthly, yearly, and the last match wins. Entries without
// a recognizable interval keep retentionDays logs. Fractions are rounded
// half up.
func CalculateCount(entry string, retentionDays int) int {
	count := retentionDays

	if strings.Contains(entry, "daily") {
		count = retentionDays
	}

	if strings.Contains(entry, "weekly") {
		count = int(math.Round(float64(retentionDays) / 7))
	}

	// months are treated as 30 days
	if strings.Contains(entry, "monthly") {
		count = int(math.Round(float64(retentionDays) / 30))
	}

	// one extra year for every started 360 days
	if strings.Contains(entry, "yearly") {
		count = 1
		if retentionDays > 360 {
			count = retentionDays/360 + 1
		}
	}

	return count
}

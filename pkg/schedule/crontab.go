package schedule

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

const (
	DefaultCrontab        = "/etc/crontab"
	DefaultDailyDirectory = "/etc/cron.daily"
)

var leadingTimePattern = regexp.MustCompile(`^([ \t]*)\d{1,2}([ \t]+)\d{1,2}([ \t])`)

// Crontab is the system crontab holding the line that runs the daily directory.
type Crontab struct {
	Path           string
	DailyDirectory string
}

// UpdateDaily rewrites the minute and hour of the daily line. It reports
// whether such a line was found; a crontab without one is left untouched.
func (c Crontab) UpdateDaily(at TimeOfDay) (bool, error) {
	info, err := os.Stat(c.Path)
	if err != nil {
		return false, errors.Wrap(err, "Unable to stat crontab")
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return false, errors.Wrap(err, "Unable to read crontab")
	}

	updated, found := UpdateDailyLine(string(data), c.DailyDirectory, at)
	if !found || updated == string(data) {
		return found, nil
	}

	err = os.WriteFile(c.Path, []byte(updated), info.Mode().Perm())
	if err != nil {
		return true, errors.Wrap(err, "Unable to write crontab")
	}

	return true, nil
}

// UpdateDailyLine replaces the leading time fields of the first scheduled
// line referencing dailyDirectory. Every other byte is kept.
func UpdateDailyLine(crontab, dailyDirectory string, at TimeOfDay) (string, bool) {
	lines := strings.Split(crontab, "\n")

	for i, line := range lines {
		if !strings.Contains(line, dailyDirectory) || !leadingTimePattern.MatchString(line) {
			continue
		}

		replacement := fmt.Sprintf("${1}%02d${2}%02d${3}", at.Minute, at.Hour)
		lines[i] = leadingTimePattern.ReplaceAllString(line, replacement)

		return strings.Join(lines, "\n"), true
	}

	return crontab, false
}

package settings

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const DefaultPath = "/etc/logrotate_cronjob_config"

// Line positions inside the settings file
const (
	lineCronjobEnabled = iota
	lineFrequency
	lineRetentionDays
	lineDailySchedule

	lineCount
)

type Frequency string

const (
	Hourly  Frequency = "hourly"
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// Frequencies lists every scheduler bucket in the order the cron directories are checked.
var Frequencies = []Frequency{Hourly, Daily, Weekly, Monthly}

func ParseFrequency(s string) (Frequency, bool) {
	for _, f := range Frequencies {
		if string(f) == s {
			return f, true
		}
	}

	return "", false
}

// Record is the set of scalar settings shared between the hook handlers
// and the scheduled job. It is written once per hook invocation and read
// back by every later run.
type Record struct {
	CronjobEnabled bool
	Frequency      Frequency
	RetentionDays  int
	DailySchedule  string
}

func (r Record) Encode() string {
	enabled := "False"
	if r.CronjobEnabled {
		enabled = "True"
	}

	var b strings.Builder
	b.WriteString(enabled + "\n")
	b.WriteString(string(r.Frequency) + "\n")
	b.WriteString(strconv.Itoa(r.RetentionDays) + "\n")
	b.WriteString(r.DailySchedule + "\n")

	return b.String()
}

func Write(path string, r Record) error {
	err := os.WriteFile(path, []byte(r.Encode()), 0644)
	if err != nil {
		return errors.Wrap(err, "Unable to write settings file")
	}

	return nil
}

func Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "Unable to remove settings file")
	}

	return nil
}

// File is a settings file loaded from disk. Each accessor parses only the
// line it needs, so a caller interested in retention does not fail on a
// malformed schedule line.
type File struct {
	path  string
	lines []string
}

func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Field: "file", Err: err}
	}

	return &File{
		path:  path,
		lines: strings.Split(string(data), "\n"),
	}, nil
}

func (f *File) line(index int, field string) (string, error) {
	if index >= len(f.lines) || len(f.lines) < lineCount {
		return "", &ParseError{Path: f.path, Field: field, Err: fmt.Errorf("expected %d lines, got %d", lineCount, len(f.lines))}
	}

	return strings.TrimRight(f.lines[index], "\r"), nil
}

func (f *File) CronjobEnabled() (bool, error) {
	value, err := f.line(lineCronjobEnabled, "cronjob_enabled")
	if err != nil {
		return false, err
	}

	return value == "True", nil
}

func (f *File) Frequency() (Frequency, error) {
	value, err := f.line(lineFrequency, "frequency")
	if err != nil {
		return "", err
	}

	frequency, ok := ParseFrequency(value)
	if !ok {
		return "", &ParseError{Path: f.path, Field: "frequency", Err: fmt.Errorf("unknown frequency %q", value)}
	}

	return frequency, nil
}

func (f *File) RetentionDays() (int, error) {
	value, err := f.line(lineRetentionDays, "retention_days")
	if err != nil {
		return 0, err
	}

	days, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &ParseError{Path: f.path, Field: "retention_days", Err: err}
	}

	if days < 0 {
		return 0, &ParseError{Path: f.path, Field: "retention_days", Err: fmt.Errorf("negative retention %d", days)}
	}

	return days, nil
}

func (f *File) DailySchedule() (string, error) {
	return f.line(lineDailySchedule, "daily_schedule")
}

package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// OverrideRule replaces the computed retention of every entry in the file at Path.
// When both Size and Interval are set, Size is the effective directive.
type OverrideRule struct {
	Path     string     `json:"path"`
	Rotate   *int       `json:"rotate,omitempty"`
	Interval *string    `json:"interval,omitempty"`
	Size     *SizeValue `json:"size,omitempty"`
}

// SizeValue accepts both `"size": "100M"` and `"size": 100`.
type SizeValue string

func (s *SizeValue) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = SizeValue(str)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return errors.Wrap(err, "size must be a string or a number")
	}

	*s = SizeValue(num.String())
	return nil
}

type OverrideSettings struct {
	Rotate   *int
	Interval *string
	Size     *string
}

// Overrides is an ordered list of rules. For duplicated paths the last rule wins.
type Overrides []OverrideRule

func ParseOverrides(raw string) (Overrides, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var overrides Overrides

	err := json.Unmarshal([]byte(raw), &overrides)
	if err != nil {
		return nil, errors.Wrap(err, "Unable to parse override rules")
	}

	return overrides, nil
}

// Files returns the paths of all rules declaring one, in declaration order.
func (o Overrides) Files() []string {
	var files []string

	for _, rule := range o {
		if rule.Path == "" {
			continue
		}
		files = append(files, rule.Path)
	}

	return files
}

func (o Overrides) Has(path string) bool {
	if path == "" {
		return false
	}

	for _, rule := range o {
		if rule.Path == path {
			return true
		}
	}

	return false
}

// Settings resolves the override for path. Fields the matching rule does not
// declare stay nil.
func (o Overrides) Settings(path string) OverrideSettings {
	var settings OverrideSettings

	if path == "" {
		return settings
	}

	for _, rule := range o {
		if rule.Path != path {
			continue
		}

		settings = OverrideSettings{
			Rotate:   rule.Rotate,
			Interval: rule.Interval,
		}

		if rule.Size != nil {
			size := string(*rule.Size)
			settings.Size = &size
		}
	}

	return settings
}

func (s OverrideSettings) String() string {
	var parts []string

	if s.Rotate != nil {
		parts = append(parts, "rotate="+strconv.Itoa(*s.Rotate))
	}
	if s.Interval != nil {
		parts = append(parts, "interval="+*s.Interval)
	}
	if s.Size != nil {
		parts = append(parts, "size="+*s.Size)
	}

	return strings.Join(parts, " ")
}

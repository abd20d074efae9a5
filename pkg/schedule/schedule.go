package schedule

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

type Kind string

const (
	KindUnset  Kind = "unset"
	KindSet    Kind = "set"
	KindRandom Kind = "random"
)

// DefaultDaily is the time Debian and Ubuntu run cron.daily at.
var DefaultDaily = TimeOfDay{Hour: 6, Minute: 25}

type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes() < other.minutes()
}

// CronFields renders the time as the leading "minute hour" fields of a crontab line.
func (t TimeOfDay) CronFields() string {
	return fmt.Sprintf("%02d %02d", t.Minute, t.Hour)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Schedule decides when cron.daily runs.
type Schedule interface {
	Kind() Kind
	Resolve(rng *rand.Rand) TimeOfDay
}

// Unset restores DefaultDaily.
type Unset struct{}

func (Unset) Kind() Kind { return KindUnset }

func (Unset) Resolve(*rand.Rand) TimeOfDay { return DefaultDaily }

// Set pins cron.daily to a fixed time.
type Set struct {
	At TimeOfDay
}

func (Set) Kind() Kind { return KindSet }

func (s Set) Resolve(*rand.Rand) TimeOfDay { return s.At }

// Random picks one minute in [Start, End], both ends included. The pick is
// made once, when the schedule is applied; the crontab then keeps that
// fixed time until the next apply.
type Random struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (Random) Kind() Kind { return KindRandom }

func (r Random) Resolve(rng *rand.Rand) TimeOfDay {
	offset := rng.Intn(r.End.minutes() - r.Start.minutes() + 1)
	total := r.Start.minutes() + offset

	return TimeOfDay{Hour: total / 60, Minute: total % 60}
}

// Parse validates a daily schedule directive:
//
//	unset
//	set,HH:MM
//	random,HH:MM,HH:MM
func Parse(directive string) (Schedule, error) {
	parts := strings.Split(strings.TrimSpace(directive), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	invalid := func(format string, args ...interface{}) error {
		return &InvalidCronConfigError{Directive: directive, Reason: fmt.Sprintf(format, args...)}
	}

	switch Kind(parts[0]) {
	case KindUnset:
		if len(parts) != 1 {
			return nil, invalid("unset takes no time")
		}

		return Unset{}, nil

	case KindSet:
		if len(parts) != 2 {
			return nil, invalid("set takes exactly one time")
		}

		at, err := parseTime(parts[1])
		if err != nil {
			return nil, invalid("%v", err)
		}

		return Set{At: at}, nil

	case KindRandom:
		if len(parts) != 3 {
			return nil, invalid("random takes a start and an end time")
		}

		start, err := parseTime(parts[1])
		if err != nil {
			return nil, invalid("%v", err)
		}

		end, err := parseTime(parts[2])
		if err != nil {
			return nil, invalid("%v", err)
		}

		if start == end {
			return nil, invalid("start time (%s) and end time (%s) can't be equal", start, end)
		}

		if !start.Before(end) {
			return nil, invalid("start time (%s) should not be after end time (%s)", start, end)
		}

		return Random{Start: start, End: end}, nil

	default:
		return nil, invalid("unknown schedule type %q", parts[0])
	}
}

func parseTime(s string) (TimeOfDay, error) {
	fields := strings.Split(s, ":")
	if len(fields) != 2 {
		return TimeOfDay{}, fmt.Errorf("time %q is not in HH:MM format", s)
	}

	hour, err := strconv.Atoi(fields[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("hour of %q is not a number", s)
	}

	minute, err := strconv.Atoi(fields[1])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("minute of %q is not a number", s)
	}

	if hour < 0 || hour >= 24 {
		return TimeOfDay{}, fmt.Errorf("hour of %q is out of range", s)
	}

	if minute < 0 || minute >= 60 {
		return TimeOfDay{}, fmt.Errorf("minute of %q is out of range", s)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

package settings

import (
	"fmt"

	"github.com/pkg/errors"
)

// ParseError is returned when the shared settings file is missing or one of
// its fields cannot be parsed.
type ParseError struct {
	Path  string
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Unable to parse %s from settings file %s: %v", e.Field, e.Path, e.Err)
}

func IsParseError(err error) bool {
	_, ok := errors.Cause(err).(*ParseError)
	return ok
}

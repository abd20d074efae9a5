package schedule

import (
	"fmt"

	"github.com/pkg/errors"
)

// InvalidCronConfigError is returned for a daily schedule directive that
// does not validate.
type InvalidCronConfigError struct {
	Directive string
	Reason    string
}

func (e *InvalidCronConfigError) Error() string {
	return fmt.Sprintf("Invalid daily schedule %q: %s", e.Directive, e.Reason)
}

func IsInvalidCronConfig(err error) bool {
	_, ok := errors.Cause(err).(*InvalidCronConfigError)
	return ok
}

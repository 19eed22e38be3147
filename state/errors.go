package state

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedState matches every MalformedStateError.
var ErrMalformedState = errors.New("malformed state")

// MalformedStateError lists the parts of a persisted blob that could not be applied. Everything else in the blob
// was applied, so the session is still usable.
type MalformedStateError struct {
	Problems []string
}

func (e *MalformedStateError) Error() string {
	return "malformed state: " + strings.Join(e.Problems, "; ")
}

func (e *MalformedStateError) Is(target error) bool {
	return target == ErrMalformedState
}

func (e *MalformedStateError) add(format string, args ...interface{}) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *MalformedStateError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}

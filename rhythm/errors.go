package rhythm

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnknownSignature   = errors.New("unknown signature")
	ErrDuplicateSignature = errors.New("signature already registered")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrIndexOutOfRange    = errors.New("subdivision index out of range")
	ErrInvalidDigit       = errors.New("digit must be between 0 and 9")
	ErrPatternLength      = errors.New("accent pattern length does not match signature")
	ErrInvalidAccent      = errors.New("invalid accent")
)

// ValidationError is returned when a command is rejected. The session is left unchanged.
type ValidationError struct {
	Op  string
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(op string, err error, format string, args ...interface{}) error {
	return &ValidationError{Op: op, Err: errors.Wrapf(err, format, args...)}
}

package wad

import (
	"errors"
	"fmt"
)

// Failure kinds. Match them with errors.Is.
var (
	ErrFailedToOpenFile        = errors.New("failed to open file")
	ErrFailedToReadHeader      = errors.New("failed to read header")
	ErrCouldNotDecodeHeader    = errors.New("could not decode header")
	ErrFailedToReadDirectory   = errors.New("failed to read directory")
	ErrCouldNotDecodeDirectory = errors.New("could not decode directory")

	ErrNameTooLarge = errors.New("lump name too large")
)

// LoadError is returned when an archive cannot be loaded.
// errors.Is matches both Kind and the underlying cause.
type LoadError struct {
	Kind  error  // one of the Err* kinds above
	Path  string // file being loaded
	Index int    // directory entry index, -1 if not applicable
	Err   error  // underlying cause, may be nil
}

func (e *LoadError) Error() string {
	msg := "load error"
	if e.Kind != nil {
		msg = e.Kind.Error()
	}
	cause := e.Err
	if cause != nil && e.Kind != nil && errors.Is(cause, e.Kind) {
		// decode errors already carry their kind
		msg, cause = cause.Error(), nil
	}
	if e.Index >= 0 {
		msg = fmt.Sprintf("%s (entry %d)", msg, e.Index)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return msg
}

func (e *LoadError) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

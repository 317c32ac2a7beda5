package extract

import (
	"errors"
	"fmt"
)

// ErrIncompatibleMerge is returned when a staged directory must be merged
// over an existing destination file, or a staged file over an existing
// directory below the top level. There is no safe coercion for either.
var ErrIncompatibleMerge = errors.New("incompatible merge target")

// ExtractError wraps any failure while unpacking an archive.
type ExtractError struct {
	Path string
	Err  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Path, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// FormatError reports a file that is not the format its name, or the
// caller, claimed it to be.
type FormatError struct {
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

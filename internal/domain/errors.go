package domain

import "errors"

// ErrMissingExecutable is returned when neither the bundled runtime
// directory nor the system PATH provides a required external tool.
var ErrMissingExecutable = errors.New("executable not found")

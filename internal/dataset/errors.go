package dataset

import (
	"errors"
	"fmt"
)

// Load failure kinds, matchable with errors.Is.
var (
	ErrFileNotFound        = errors.New("file not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrSchemaMismatch      = errors.New("schema mismatch")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrMalformedRecord     = errors.New("malformed record")
	ErrSheetNotFound       = errors.New("sheet not found")
)

// LoadError describes why a dataset could not be loaded.
type LoadError struct {
	Path string
	// Line is the 1-based source line, or 0 when not tied to a record.
	Line   int
	Kind   error
	Detail string
	Err    error
}

func (e *LoadError) Error() string {
	msg := e.Kind.Error()
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return fmt.Sprintf("load %s: %s", e.Path, msg)
}

// Is matches the failure kind.
func (e *LoadError) Is(target error) bool { return target == e.Kind }

func (e *LoadError) Unwrap() error { return e.Err }

package common

import (
	"errors"
	"fmt"
)

// PathErrorKind classifies every failure the normalization engine can
// report. The set is closed: callers switch on the kind, never on message
// text.
type PathErrorKind int

const (
	// KindEmptyPath - empty input string
	KindEmptyPath PathErrorKind = iota
	// KindInvalidDriveLetter - drive letter outside A-Z, or the drive does not exist
	KindInvalidDriveLetter
	// KindInvalidComponent - traversal past the root, illegal characters, or a reserved name
	KindInvalidComponent
	// KindPathTooLong - canonical path exceeds the extended-length ceiling
	KindPathTooLong
	// KindPlatformError - an OS path-query call failed; wraps the OS error
	KindPlatformError
	// KindUnsupportedFormat - the input shape cannot be normalized
	KindUnsupportedFormat
	// KindUnicodeError - input is not valid UTF-8 or NFC composition failed
	KindUnicodeError
)

// String returns the stable name of the error kind.
func (k PathErrorKind) String() string {
	switch k {
	case KindEmptyPath:
		return "EmptyPath"
	case KindInvalidDriveLetter:
		return "InvalidDriveLetter"
	case KindInvalidComponent:
		return "InvalidComponent"
	case KindPathTooLong:
		return "PathTooLong"
	case KindPlatformError:
		return "PlatformError"
	case KindUnsupportedFormat:
		return "UnsupportedFormat"
	case KindUnicodeError:
		return "UnicodeError"
	default:
		return fmt.Sprintf("PathErrorKind(%d)", int(k))
	}
}

// PathError is the error type returned by every operation in the
// detection/normalization/platform path. Malformed input is data, not a
// programming error: no code path panics on it.
type PathError struct {
	Kind   PathErrorKind
	Path   string // offending raw input, surfaced to the user by callers
	Detail string // human-readable specifics (offending component, letter, length)
	Err    error  // wrapped OS error, set for KindPlatformError
}

// Error implements the error interface.
func (e *PathError) Error() string {
	switch {
	case e.Err != nil && e.Detail != "":
		return fmt.Sprintf("%s: %s (%q): %v", e.Kind, e.Detail, e.Path, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s (%q): %v", e.Kind, e.Path, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s (%q)", e.Kind, e.Detail, e.Path)
	default:
		return fmt.Sprintf("%s (%q)", e.Kind, e.Path)
	}
}

// Unwrap exposes the underlying OS error for errors.Is/As chains.
func (e *PathError) Unwrap() error {
	return e.Err
}

// NewPathError creates a PathError for the given kind and raw input.
func NewPathError(kind PathErrorKind, path, detail string) *PathError {
	return &PathError{Kind: kind, Path: path, Detail: detail}
}

// WrapPlatformError wraps an OS error into a KindPlatformError value,
// preserving the OS error code/message for the caller.
func WrapPlatformError(path, op string, err error) *PathError {
	return &PathError{Kind: KindPlatformError, Path: path, Detail: op, Err: err}
}

// KindOf extracts the PathErrorKind from an error chain. The second return
// is false when err does not carry a *PathError.
func KindOf(err error) (PathErrorKind, bool) {
	var pe *PathError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries a *PathError of the given kind.
func IsKind(err error, kind PathErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// Package apperr defines the failure kinds a mergepdf run can end with and
// the process exit code each one maps to.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindUsage
	KindInvalidArgument
	KindDirectoryUnreadable
	KindOutputDirectory
	KindMergeIO
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage error"
	case KindInvalidArgument:
		return "invalid argument"
	case KindDirectoryUnreadable:
		return "directory unreadable"
	case KindOutputDirectory:
		return "output directory creation failed"
	case KindMergeIO:
		return "merge i/o error"
	default:
		return "error"
	}
}

// Error is a classified failure. Path names the file or directory involved,
// if any.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Path != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Path != "":
		return fmt.Sprintf("%s: %s", e.Path, e.Kind)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err as a failure of the given kind.
func New(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}

// Usage returns a usage error with the given message.
func Usage(format string, args ...any) *Error {
	return &Error{Kind: KindUsage, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode maps err to the process exit code: 0 for nil, 1 for usage errors
// and missing inputs, 2 for everything else.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindUsage, KindInvalidArgument:
		return 1
	default:
		return 2
	}
}

package topreport

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	// KindFileRead means the report could not be read from disk.
	KindFileRead ErrorKind = iota + 1
	// KindEmptyFile means the report exists but holds only whitespace.
	KindEmptyFile
	// KindIncompleteHeader means a header line or one of its tokens is missing.
	KindIncompleteHeader
	// KindIncompleteBody means a row has too few columns or no row survived.
	KindIncompleteBody
	// KindInvalidFormat means a numeric column could not be parsed.
	KindInvalidFormat
)

func (k ErrorKind) String() string {
	switch k {
	case KindFileRead:
		return "file-read"
	case KindEmptyFile:
		return "empty-file"
	case KindIncompleteHeader:
		return "incomplete-header"
	case KindIncompleteBody:
		return "incomplete-body"
	case KindInvalidFormat:
		return "invalid-format"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ParseError is the only error type returned by this package.
// Detail names the missing line, token or column; Err carries the I/O cause
// for KindFileRead.
type ParseError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

// Sentinels for errors.Is. They match any ParseError of the same kind.
var (
	ErrFileRead         = &ParseError{Kind: KindFileRead}
	ErrEmptyFile        = &ParseError{Kind: KindEmptyFile}
	ErrIncompleteHeader = &ParseError{Kind: KindIncompleteHeader}
	ErrIncompleteBody   = &ParseError{Kind: KindIncompleteBody}
	ErrInvalidFormat    = &ParseError{Kind: KindInvalidFormat}
)

// ErrNotRegularFile is the cause wrapped by a KindFileRead error when the
// path exists but is a directory, device or similar.
var ErrNotRegularFile = errors.New("not a regular file")

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindFileRead:
		return fmt.Sprintf("failed to read profile file: %v", e.Err)
	case KindEmptyFile:
		return "profile file is empty"
	case KindIncompleteHeader:
		return "incomplete header: " + e.Detail
	case KindIncompleteBody:
		return "incomplete body: " + e.Detail
	case KindInvalidFormat:
		return "invalid profile format: " + e.Detail
	default:
		return "profile parsing error: " + e.Detail
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports whether target is a ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func fileReadError(err error) error {
	return &ParseError{Kind: KindFileRead, Err: err}
}

func headerError(format string, args ...any) error {
	return &ParseError{Kind: KindIncompleteHeader, Detail: fmt.Sprintf(format, args...)}
}

func bodyError(format string, args ...any) error {
	return &ParseError{Kind: KindIncompleteBody, Detail: fmt.Sprintf(format, args...)}
}

func formatError(format string, args ...any) error {
	return &ParseError{Kind: KindInvalidFormat, Detail: fmt.Sprintf(format, args...)}
}

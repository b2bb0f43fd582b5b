package descriptor

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat   = errors.New("invalid format")
	ErrMissingName     = errors.New("the project descriptor does not contain a name")
	ErrUnsupportedType = errors.New("the project descriptor contains unsupported project type")
	ErrMissingSources  = errors.New("the project descriptor does not contain a list of source files")
	ErrMissingHeaders  = errors.New("the library project descriptor does not contain a list of headers")
	ErrUnknownStdlib   = errors.New("the project descriptor contains an unknown standard library")
	ErrUnreadable      = errors.New("can't open file")
	ErrNotUTF8         = errors.New("the file is not encoded by UTF-8")
	ErrInvalidJSON     = errors.New("the file can't be parsed")
)

// FormatError reports a malformed or incomplete descriptor.
type FormatError struct {
	// File is the descriptor the error was found in
	File string

	// Err is one of the sentinel errors of this package
	Err error

	// Detail names the offending value, if any
	Detail string

	// Cause is an underlying error from decoding or reading, if any
	Cause error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("'%s', %v", e.File, e.Err)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func formatError(file string, err error, detail string) *FormatError {
	return &FormatError{File: file, Err: err, Detail: detail}
}

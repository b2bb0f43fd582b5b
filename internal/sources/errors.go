package sources

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrBadPattern   = errors.New("malformed source pattern")
)

// SourceError reports a declared source that cannot be enumerated.
type SourceError struct {
	Project string
	File    string
	Err     error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("project '%s': '%s': %v", e.Project, e.File, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

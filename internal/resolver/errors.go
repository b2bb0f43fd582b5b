package resolver

import (
	"errors"
	"fmt"
)

var (
	ErrNoSourceLocation = errors.New("no reachable source location")
	ErrUnresolved       = errors.New("the project descriptor is still incomplete")
)

// DependencyError reports a dependency that could not be fetched or completed.
type DependencyError struct {
	Project string
	Err     error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("failed to resolve dependency '%s': %v", e.Project, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

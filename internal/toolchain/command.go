// Package toolchain runs external build tools. Commands are plain argument
// vectors; nothing here goes through a shell.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Command is one external tool invocation.
type Command struct {
	Name string
	Args []string

	// Globs lists the arguments that are file patterns to expand before
	// the tool starts; every other argument is passed verbatim
	Globs []string
}

// NewCommand creates a Command
func NewCommand(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// WithGlobs returns a copy of c that expands the given arguments.
func (c Command) WithGlobs(patterns ...string) Command {
	c.Globs = append(append([]string(nil), c.Globs...), patterns...)
	return c
}

// IsGlob reports whether arg is one of the patterns to expand.
func (c Command) IsGlob(arg string) bool {
	for _, g := range c.Globs {
		if g == arg {
			return true
		}
	}
	return false
}

// Argv returns the name followed by the arguments.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command the way it would be typed in a shell.
func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// ExternalToolError reports a tool that could not start or exited non-zero.
type ExternalToolError struct {
	Command  Command
	ExitCode int
	Err      error
}

func (e *ExternalToolError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("'%s' exited with code %d", e.Command.Name, e.ExitCode)
	}
	return fmt.Sprintf("'%s' failed: %v", e.Command.Name, e.Err)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// IsExternalToolError reports whether err carries an ExternalToolError.
func IsExternalToolError(err error) bool {
	var toolErr *ExternalToolError
	return errors.As(err, &toolErr)
}

// Runner executes commands one at a time.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

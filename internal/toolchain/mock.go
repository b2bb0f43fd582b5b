package toolchain

import (
	"context"
	"sync"
)

// MockRunner implements Runner for testing; it records every command and
// fails those matched by FailWhen.
type MockRunner struct {
	mu       sync.Mutex
	commands []Command

	// FailWhen selects commands that exit with code 1
	FailWhen func(cmd Command) bool
}

// NewMockRunner creates a MockRunner where every command succeeds
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

func (m *MockRunner) Run(ctx context.Context, cmd Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.commands = append(m.commands, cmd)

	if err := ctx.Err(); err != nil {
		return &ExternalToolError{Command: cmd, ExitCode: -1, Err: err}
	}
	if m.FailWhen != nil && m.FailWhen(cmd) {
		return &ExternalToolError{Command: cmd, ExitCode: 1}
	}
	return nil
}

// Commands returns every recorded command in order
func (m *MockRunner) Commands() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Command(nil), m.commands...)
}

// CommandLines returns every recorded command rendered as a string
func (m *MockRunner) CommandLines() []string {
	cmds := m.Commands()
	lines := make([]string, len(cmds))
	for i, c := range cmds {
		lines[i] = c.String()
	}
	return lines
}

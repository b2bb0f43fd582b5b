package toolchain

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
)

// OSRunner implements Runner with real processes started in a fixed directory.
type OSRunner struct {
	dir    string
	stdout io.Writer
	stderr io.Writer
}

// NewOSRunner creates a runner whose processes start in dir
func NewOSRunner(dir string, stdout, stderr io.Writer) *OSRunner {
	return &OSRunner{dir: dir, stdout: stdout, stderr: stderr}
}

// Run starts cmd and waits for it. The arguments listed in cmd.Globs are
// expanded against the working directory first, the way a shell would; a
// pattern without matches is passed through unchanged.
func (r *OSRunner) Run(ctx context.Context, cmd Command) error {
	args := make([]string, 0, len(cmd.Args))
	for _, arg := range cmd.Args {
		if cmd.IsGlob(arg) {
			args = append(args, r.expand(arg)...)
			continue
		}
		args = append(args, arg)
	}

	execCmd := exec.CommandContext(ctx, cmd.Name, args...)
	execCmd.Dir = r.dir
	execCmd.Stdout = r.stdout
	execCmd.Stderr = r.stderr

	if err := execCmd.Run(); err != nil {
		toolErr := &ExternalToolError{Command: cmd, ExitCode: -1, Err: err}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			toolErr.ExitCode = exitErr.ExitCode()
		}
		return toolErr
	}

	return nil
}

func (r *OSRunner) expand(arg string) []string {
	if !strings.ContainsAny(arg, "*?[") {
		return []string{arg}
	}

	pattern := arg
	if !filepath.IsAbs(pattern) && r.dir != "" {
		pattern = filepath.Join(r.dir, arg)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return []string{arg}
	}

	if filepath.IsAbs(arg) || r.dir == "" {
		return matches
	}

	expanded := make([]string, 0, len(matches))
	for _, m := range matches {
		rel, err := filepath.Rel(r.dir, m)
		if err != nil {
			rel = m
		}
		expanded = append(expanded, rel)
	}
	return expanded
}

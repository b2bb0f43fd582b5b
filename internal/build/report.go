package build

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakoblorz/go-factory/internal/tui"
)

// ErrBuildFailed is returned when at least one compile or link step failed.
var ErrBuildFailed = errors.New("build failed")

// Failure records one failed step
type Failure struct {
	Project string
	Output  string
	Err     error
}

// TargetReport summarizes the outcome of one target.
type TargetReport struct {
	Name     string
	Compiled []string
	Linked   []string
	Failed   []Failure
}

// Report summarizes a build run.
type Report struct {
	Targets []*TargetReport
}

// Target returns the report of the named target, or nil.
func (r *Report) Target(name string) *TargetReport {
	for _, t := range r.Targets {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// Failures returns every failed step across targets.
func (r *Report) Failures() []Failure {
	var failures []Failure
	for _, t := range r.Targets {
		failures = append(failures, t.Failed...)
	}
	return failures
}

// Err returns an error wrapping ErrBuildFailed when any step failed.
func (r *Report) Err() error {
	failures := r.Failures()
	if len(failures) == 0 {
		return nil
	}

	outputs := make([]string, len(failures))
	for i, f := range failures {
		outputs[i] = f.Output
	}
	return fmt.Errorf("%w: %d step(s) failed: %s", ErrBuildFailed, len(failures), strings.Join(outputs, ", "))
}

// Summary renders a one-line outcome per target.
func Summary(r *Report) string {
	var b strings.Builder
	for _, t := range r.Targets {
		line := fmt.Sprintf("%s: %d compiled, %d linked", t.Name, len(t.Compiled), len(t.Linked))
		if len(t.Failed) > 0 {
			line += fmt.Sprintf(", %d failed", len(t.Failed))
			b.WriteString(tui.ErrorStyle.Render("✗ " + line))
		} else {
			b.WriteString(tui.SuccessStyle.Render("✓ " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

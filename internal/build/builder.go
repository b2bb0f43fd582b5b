// Package build plans and runs the compile and link steps of a resolved
// project graph.
package build

import (
	"context"
	"fmt"
	"io"

	"github.com/jakoblorz/go-factory/internal/compiler"
	"github.com/jakoblorz/go-factory/internal/filesystem"
	"github.com/jakoblorz/go-factory/internal/models"
	"github.com/jakoblorz/go-factory/internal/toolchain"
	"github.com/jakoblorz/go-factory/internal/tui"
)

// DefaultBuildRoot is where object files and executables are written.
const DefaultBuildRoot = "build"

// Options configures a Builder
type Options struct {
	BuildRoot string
	Host      compiler.Host

	// Verbose prints every command line before it runs
	Verbose bool
}

// Builder turns a resolved project graph into compiler invocations.
type Builder struct {
	fs        filesystem.FileSystem
	runner    toolchain.Runner
	host      compiler.Host
	buildRoot string
	verbose   bool
	out       io.Writer
}

// NewBuilder creates a Builder. Paths in plans are relative to the
// directory fs and runner operate in.
func NewBuilder(fs filesystem.FileSystem, runner toolchain.Runner, opts Options, out io.Writer) *Builder {
	if opts.BuildRoot == "" {
		opts.BuildRoot = DefaultBuildRoot
	}
	if opts.Host.CC == "" {
		opts.Host = compiler.DefaultHost()
	}
	if out == nil {
		out = io.Discard
	}
	return &Builder{
		fs:        fs,
		runner:    runner,
		host:      opts.Host,
		buildRoot: opts.BuildRoot,
		verbose:   opts.Verbose,
		out:       out,
	}
}

// Build plans every target and executes the plan.
func (b *Builder) Build(ctx context.Context, root *models.Project, targets []string) (*Report, error) {
	plan, err := b.Plan(root, targets)
	if err != nil {
		return nil, err
	}

	report, err := b.Execute(ctx, plan)
	if err != nil {
		return report, err
	}

	return report, report.Err()
}

// Execute creates the output folders and runs the plan target by target.
// Failed compiles are recorded and the remaining steps still run.
func (b *Builder) Execute(ctx context.Context, plan *Plan) (*Report, error) {
	if err := plan.Tree.Materialize(b.fs, plan.BuildRoot); err != nil {
		return nil, err
	}

	report := &Report{}
	for _, target := range plan.Targets {
		targetReport := &TargetReport{Name: target.Name}
		report.Targets = append(report.Targets, targetReport)

		fmt.Fprintln(b.out, tui.HeaderStyle.Render("🔨 Building target "+target.Name))

		for _, project := range target.Projects {
			fmt.Fprintf(b.out, "📦 %s\n", project.Name)

			for _, step := range project.Compile {
				err := b.run(ctx, step)
				if ctxErr := ctx.Err(); ctxErr != nil {
					return report, ctxErr
				}
				if err != nil {
					targetReport.Failed = append(targetReport.Failed, Failure{Project: project.Name, Output: step.Output, Err: err})
					fmt.Fprintf(b.out, "  ❌ %s: %v\n", step.Input, err)
					continue
				}
				targetReport.Compiled = append(targetReport.Compiled, step.Output)
				fmt.Fprintf(b.out, "  ✓ %s\n", step.Input)
			}

			if project.Link == nil {
				continue
			}

			err := b.run(ctx, *project.Link)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return report, ctxErr
			}
			if err != nil {
				targetReport.Failed = append(targetReport.Failed, Failure{Project: project.Name, Output: project.Link.Output, Err: err})
				fmt.Fprintf(b.out, "  ❌ Linking %s failed: %v\n", project.Link.Output, err)
				continue
			}
			targetReport.Linked = append(targetReport.Linked, project.Link.Output)
			fmt.Fprintf(b.out, "  🔗 Linked %s\n", project.Link.Output)
		}

		fmt.Fprintln(b.out)
	}

	return report, nil
}

func (b *Builder) run(ctx context.Context, step Step) error {
	if b.verbose {
		fmt.Fprintf(b.out, "  $ %s\n", step.Line)
	}
	return b.runner.Run(ctx, step.Command)
}

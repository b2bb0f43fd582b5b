// Package resolver completes project descriptors that were declared only by
// name and remote location: it fetches each one into the scratch root and
// merges in the descriptor the fetched tree carries.
package resolver

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-factory/internal/descriptor"
	"github.com/jakoblorz/go-factory/internal/filesystem"
	"github.com/jakoblorz/go-factory/internal/git"
	"github.com/jakoblorz/go-factory/internal/graph"
	"github.com/jakoblorz/go-factory/internal/models"
)

// DefaultExtRoot is the scratch directory fetched dependencies are cloned into.
const DefaultExtRoot = "ext"

// Resolver fills in unresolved projects of a descriptor graph.
type Resolver struct {
	fs      filesystem.FileSystem
	git     git.GitClient
	parser  *descriptor.Parser
	extRoot string
	out     io.Writer
}

// New creates a Resolver. Nested descriptors are parsed with parser so that
// the dependencies they name share its registry.
func New(fs filesystem.FileSystem, gitClient git.GitClient, parser *descriptor.Parser, extRoot string, out io.Writer) *Resolver {
	if extRoot == "" {
		extRoot = DefaultExtRoot
	}
	if out == nil {
		out = io.Discard
	}
	return &Resolver{
		fs:      fs,
		git:     gitClient,
		parser:  parser,
		extRoot: extRoot,
		out:     out,
	}
}

// Resolve resolves projects reachable from root until none is left
// unresolved. The first failure stops the run; nothing is retried.
func (r *Resolver) Resolve(ctx context.Context, root *models.Project) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		project := graph.FirstUnresolved(root)
		if project == nil {
			return nil
		}

		if err := r.resolveProject(ctx, project); err != nil {
			return err
		}
	}
}

func (r *Resolver) resolveProject(ctx context.Context, project *models.Project) error {
	if project.Path == "" {
		dir, err := r.fetch(ctx, project)
		if err != nil {
			return &DependencyError{Project: project.Name, Err: err}
		}
		project.Path = dir
	}

	if len(project.Headers) == 0 || len(project.Sources) == 0 {
		if err := r.merge(project); err != nil {
			return &DependencyError{Project: project.Name, Err: err}
		}
	}

	if !project.Complete() {
		return &DependencyError{Project: project.Name, Err: ErrUnresolved}
	}
	if err := project.MarkResolved(); err != nil {
		return &DependencyError{Project: project.Name, Err: err}
	}

	fmt.Fprintf(r.out, "✓ Resolved %s (%s)\n", project.Name, project.Path)
	return nil
}

// fetch returns the local directory of project, cloning it from the first
// URL that works when the directory is missing or empty.
func (r *Resolver) fetch(ctx context.Context, project *models.Project) (string, error) {
	if err := r.ensureDir(r.extRoot); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", r.extRoot, err)
	}

	dir := filepath.ToSlash(filepath.Join(r.extRoot, project.FixedName))

	needed, err := r.fetchNeeded(dir)
	if err != nil {
		return "", err
	}
	if !needed {
		return dir, nil
	}

	if len(project.URLs) == 0 {
		return "", ErrNoSourceLocation
	}

	client := r.git.WithContext(ctx)
	var failures []string
	for _, url := range project.URLs {
		fmt.Fprintf(r.out, "📥 Fetching %s from %s\n", project.Name, url)
		if err := client.Clone(url, dir); err != nil {
			failures = append(failures, err.Error())
			continue
		}
		return dir, nil
	}

	return "", fmt.Errorf("%w: %s", ErrNoSourceLocation, strings.Join(failures, "; "))
}

func (r *Resolver) fetchNeeded(dir string) (bool, error) {
	if !r.fs.Exists(dir) {
		return true, nil
	}
	entries, err := r.fs.ReadDir(dir)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	return len(entries) == 0, nil
}

func (r *Resolver) ensureDir(dir string) error {
	if r.fs.IsDir(dir) {
		return nil
	}
	return r.fs.MkdirAll(dir, 0755)
}

// merge adopts the fields project still lacks from the descriptor found in
// its directory.
func (r *Resolver) merge(project *models.Project) error {
	file := filepath.ToSlash(filepath.Join(project.Path, descriptor.FileName))

	nested, err := r.parser.ParseFile(r.fs, file, descriptor.Options{
		File:      file,
		Root:      true,
		Temporary: true,
	})
	if err != nil {
		return err
	}

	if len(project.Sources) == 0 {
		project.Sources = nested.Sources
	}
	if len(project.Headers) == 0 {
		project.Headers = nested.Headers
	}
	if len(project.Depends) == 0 {
		project.Depends = nested.Depends
	}
	if project.Description == "" {
		project.Description = nested.Description
	}
	if project.Author == "" {
		project.Author = nested.Author
	}
	project.Stdlib |= nested.Stdlib

	return nil
}

// Package sources expands the declared sources of a project into compile
// units and the object files they produce.
package sources

import (
	"bytes"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/go-factory/internal/filesystem"
	"github.com/jakoblorz/go-factory/internal/foldertree"
	"github.com/jakoblorz/go-factory/internal/models"
)

// Enumerator resolves source entries against the filesystem.
type Enumerator struct {
	fs        filesystem.FileSystem
	objectExt string
}

// NewEnumerator creates an Enumerator producing objects with objectExt
// (including the leading dot).
func NewEnumerator(fs filesystem.FileSystem, objectExt string) *Enumerator {
	return &Enumerator{fs: fs, objectExt: objectExt}
}

// Enumerate registers every compile unit of project. Object entries are
// appended to objects and output directories are registered below
// tree/<FixedName>. A concrete source missing on disk is a *SourceError.
func (e *Enumerator) Enumerate(project *models.Project, objects *models.ObjectList, tree *foldertree.Tree) (*models.SourceList, error) {
	sources := models.NewSourceList()
	projectTree := tree.Ensure(project.FixedName)

	ignore, err := e.loadGitIgnore(project)
	if err != nil {
		return nil, err
	}

	var concrete []models.ObjectEntry
	var patterns []models.ObjectEntry
	patternDirs := make(map[string]bool)

	for _, entry := range project.Sources {
		if !entry.HasWildcard() {
			compilePath := joinParts(project.Path, entry.Dir, entry.Pattern)
			if !e.fs.Exists(compilePath) || e.fs.IsDir(compilePath) {
				return nil, &SourceError{Project: project.Name, File: compilePath, Err: ErrFileNotFound}
			}

			objectPath := joinParts(project.FixedName, entry.Dir, stem(entry.Pattern)+e.objectExt)
			if sources.Add(project, compilePath, objectPath) {
				concrete = append(concrete, models.ObjectEntry{Project: project, Path: objectPath})
			}
			projectTree.Ensure(entry.Dir)
			continue
		}

		matches, err := e.match(project, entry, ignore)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			continue
		}

		for _, name := range matches {
			compilePath := joinParts(project.Path, entry.Dir, name)
			objectPath := joinParts(project.FixedName, entry.Dir, stem(name)+e.objectExt)
			sources.Add(project, compilePath, objectPath)
		}
		projectTree.Ensure(entry.Dir)

		if !patternDirs[entry.Dir] {
			patternDirs[entry.Dir] = true
			patterns = append(patterns, models.ObjectEntry{
				Project: project,
				Path:    joinParts(project.FixedName, entry.Dir, "*"+e.objectExt),
				Pattern: true,
			})
		}
	}

	// a directory pattern already covers the concrete objects inside it
	for _, entry := range concrete {
		if patternDirs[objectDir(project, entry.Path)] {
			continue
		}
		objects.Append(entry)
	}
	for _, entry := range patterns {
		objects.Append(entry)
	}

	return sources, nil
}

// match lists the files of the entry's directory whose name fits the
// single-segment template, skipping what the project's .gitignore excludes.
func (e *Enumerator) match(project *models.Project, entry models.SourceEntry, ignore gitignore.GitIgnore) ([]string, error) {
	dir := joinParts(project.Path, entry.Dir)
	if dir == "" {
		dir = "."
	}
	if !e.fs.IsDir(dir) {
		return nil, nil
	}

	dirEntries, err := e.fs.ReadDir(dir)
	if err != nil {
		return nil, &SourceError{Project: project.Name, File: dir, Err: err}
	}

	var matches []string
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}

		ok, err := doublestar.Match(entry.Pattern, dirEntry.Name())
		if err != nil {
			return nil, &SourceError{Project: project.Name, File: entry.String(), Err: fmt.Errorf("%w: %v", ErrBadPattern, err)}
		}
		if !ok {
			continue
		}

		if ignore != nil {
			rel := filepath.FromSlash(joinParts(entry.Dir, dirEntry.Name()))
			if m := ignore.Relative(rel, false); m != nil && m.Ignore() {
				continue
			}
		}

		matches = append(matches, dirEntry.Name())
	}

	return matches, nil
}

func (e *Enumerator) loadGitIgnore(project *models.Project) (gitignore.GitIgnore, error) {
	ignorePath := joinParts(project.Path, ".gitignore")
	if !e.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := e.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ignorePath, err)
	}

	return gitignore.New(bytes.NewReader(data), filepath.FromSlash(project.Path), nil), nil
}

// joinParts joins path parts with '/', skipping empty and "." parts.
func joinParts(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSuffix(p, "/")
		if p == "" || p == "." {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, "/")
}

// stem drops a ".c" or empty extension; any other extension is kept.
func stem(name string) string {
	ext := path.Ext(name)
	if ext == ".c" || ext == "." {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

func objectDir(project *models.Project, objectPath string) string {
	dir := path.Dir(strings.TrimPrefix(objectPath, project.FixedName+"/"))
	if dir == "." {
		return ""
	}
	return dir
}

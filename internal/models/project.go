package models

import (
	"fmt"
	"path"
	"strings"
)

// ProjectType represents the kind of project.
type ProjectType string

const (
	ProjectTypeApplication ProjectType = "application"
	ProjectTypeLibrary     ProjectType = "library"
)

// IsValid checks if the project type is valid
func (t ProjectType) IsValid() bool {
	switch t {
	case ProjectTypeApplication, ProjectTypeLibrary:
		return true
	default:
		return false
	}
}

// String returns the string representation of ProjectType
func (t ProjectType) String() string {
	return string(t)
}

// ParseProjectType parses a string into a ProjectType
func ParseProjectType(s string) (ProjectType, error) {
	pt := ProjectType(s)
	if !pt.IsValid() {
		return "", fmt.Errorf("invalid project type: %s (must be application or library)", s)
	}
	return pt, nil
}

// SourceEntry is one declared source: a subdirectory of the project plus a
// file name or single-segment pattern inside it.
type SourceEntry struct {
	// Dir is slash-separated and empty for the project root
	Dir string

	// Pattern is a file name, possibly containing wildcards
	Pattern string
}

// ParseSourceEntry splits a declared source path at its last separator.
func ParseSourceEntry(s string) SourceEntry {
	s = NormalizePath(s)
	dir, file := path.Split(s)
	if dir != "" {
		dir = path.Clean(dir)
	}
	if dir == "." {
		dir = ""
	}
	return SourceEntry{Dir: dir, Pattern: file}
}

// HasWildcard reports whether the entry names a file template rather than a
// file. Only '*' makes a template; '?' and '[' are ordinary file name
// characters unless a '*' is present too.
func (e SourceEntry) HasWildcard() bool {
	return strings.Contains(e.Pattern, "*")
}

// String returns the entry as written in a descriptor.
func (e SourceEntry) String() string {
	if e.Dir == "" {
		return e.Pattern
	}
	return e.Dir + "/" + e.Pattern
}

// NormalizePath converts any backslash separators to forward slashes.
func NormalizePath(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// Project describes one buildable project of the descriptor graph.
type Project struct {
	// Name is the project identifier (unique for the whole run)
	Name string

	// FixedName is Name made safe for file system paths
	FixedName string

	Description string
	Author      string

	// Type indicates whether the project links into an executable
	Type ProjectType

	// Sources are the declared compile inputs, in declaration order
	Sources []SourceEntry

	// Headers are include directories, relative to Path
	Headers []string

	// Depends holds shared references; one instance may have many parents
	Depends []*Project

	// Path is the project location; empty until resolved
	Path string

	// URLs are remote locations tried in order when Path is unknown
	URLs []string

	// Stdlib is the set of platform libraries the project links against
	Stdlib StdlibMask

	// Unresolved is set while Path, Sources or (for libraries) Headers are missing
	Unresolved bool

	resolved bool
}

// NewProject creates a new Project instance
func NewProject(name string, projectType ProjectType) *Project {
	return &Project{
		Name:      name,
		FixedName: FixedName(name),
		Type:      projectType,
	}
}

// IsLibrary reports whether the project is a library.
func (p *Project) IsLibrary() bool {
	return p.Type == ProjectTypeLibrary
}

// IsApplication reports whether the project links into an executable.
func (p *Project) IsApplication() bool {
	return p.Type == ProjectTypeApplication
}

// Complete reports whether the project carries everything needed to build.
func (p *Project) Complete() bool {
	if p.Path == "" || len(p.Sources) == 0 {
		return false
	}
	return !p.IsLibrary() || len(p.Headers) > 0
}

// MarkResolved records the one-way transition out of the unresolved state.
func (p *Project) MarkResolved() error {
	if p.resolved {
		return fmt.Errorf("project %s is already resolved", p.Name)
	}
	if !p.Complete() {
		return fmt.Errorf("project %s is incomplete", p.Name)
	}
	p.resolved = true
	p.Unresolved = false
	return nil
}

// FixedName replaces every character outside [A-Za-z0-9_-] with '_'.
func FixedName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

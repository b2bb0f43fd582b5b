package models

import "sort"

// SourceDescriptor is one compile unit of a project.
type SourceDescriptor struct {
	Project *Project

	// CompilePath is the source file, relative to the workspace root
	CompilePath string

	// ObjectPath is the object file, relative to the target output folder
	ObjectPath string
}

// SourceList is a set of compile units keyed by compile path.
type SourceList struct {
	byPath map[string]*SourceDescriptor
}

// NewSourceList creates an empty SourceList
func NewSourceList() *SourceList {
	return &SourceList{byPath: make(map[string]*SourceDescriptor)}
}

// Add registers a compile unit; a second registration of the same compile
// path is ignored and reported as false.
func (l *SourceList) Add(project *Project, compilePath, objectPath string) bool {
	if _, exists := l.byPath[compilePath]; exists {
		return false
	}
	l.byPath[compilePath] = &SourceDescriptor{
		Project:     project,
		CompilePath: compilePath,
		ObjectPath:  objectPath,
	}
	return true
}

// Len returns the number of distinct compile units.
func (l *SourceList) Len() int {
	return len(l.byPath)
}

// Sources returns the compile units ordered by compile path.
func (l *SourceList) Sources() []*SourceDescriptor {
	sources := make([]*SourceDescriptor, 0, len(l.byPath))
	for _, s := range l.byPath {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].CompilePath < sources[j].CompilePath
	})
	return sources
}

// ObjectEntry is one link input: a concrete object file or a wildcard
// pattern covering every object of one output subdirectory.
type ObjectEntry struct {
	Project *Project
	Path    string
	Pattern bool
}

// ObjectList collects link inputs for one target, in build order.
type ObjectList struct {
	entries []ObjectEntry
}

// NewObjectList creates an empty ObjectList
func NewObjectList() *ObjectList {
	return &ObjectList{}
}

// Append adds a link input.
func (l *ObjectList) Append(entry ObjectEntry) {
	l.entries = append(l.entries, entry)
}

// Entries returns every link input in insertion order.
func (l *ObjectList) Entries() []ObjectEntry {
	return append([]ObjectEntry(nil), l.entries...)
}

// Paths returns the paths of every link input in insertion order.
func (l *ObjectList) Paths() []string {
	paths := make([]string, len(l.entries))
	for i, e := range l.entries {
		paths[i] = e.Path
	}
	return paths
}

// EntriesFor returns, in insertion order, the link inputs contributed by the
// given projects.
func (l *ObjectList) EntriesFor(projects map[*Project]bool) []ObjectEntry {
	var entries []ObjectEntry
	for _, e := range l.entries {
		if projects[e.Project] {
			entries = append(entries, e)
		}
	}
	return entries
}

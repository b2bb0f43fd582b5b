// Package foldertree collects the output directories a build needs and
// creates them one level at a time.
package foldertree

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jakoblorz/go-factory/internal/filesystem"
)

// Tree maps path segments to subtrees.
type Tree struct {
	children map[string]*Tree
}

// New creates an empty tree
func New() *Tree {
	return &Tree{children: make(map[string]*Tree)}
}

// Ensure inserts the missing segments of p below t and returns the deepest
// node. Empty and "." segments are ignored, so Ensure("") returns t.
func (t *Tree) Ensure(p string) *Tree {
	node := t
	for _, segment := range strings.Split(filepath.ToSlash(p), "/") {
		if segment == "" || segment == "." {
			continue
		}
		child, ok := node.children[segment]
		if !ok {
			child = New()
			node.children[segment] = child
		}
		node = child
	}
	return node
}

// Names returns the direct child segments, sorted.
func (t *Tree) Names() []string {
	names := make([]string, 0, len(t.children))
	for name := range t.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths lists every node below t as a slash-separated path, parents first.
func (t *Tree) Paths() []string {
	var paths []string
	var walk func(node *Tree, prefix string)
	walk = func(node *Tree, prefix string) {
		for _, name := range node.Names() {
			p := path.Join(prefix, name)
			paths = append(paths, p)
			walk(node.children[name], p)
		}
	}
	walk(t, "")
	return paths
}

// Materialize creates rootDir and its missing parents, then every subtree
// below it in name order, one level at a time. The first failure aborts.
func (t *Tree) Materialize(fsys filesystem.FileSystem, rootDir string) error {
	if !fsys.IsDir(rootDir) {
		if err := fsys.MkdirAll(rootDir, 0755); err != nil {
			return fmt.Errorf("failed to create folder %s: %w", rootDir, err)
		}
	}
	return t.materializeChildren(fsys, rootDir)
}

func (t *Tree) materializeChildren(fsys filesystem.FileSystem, dir string) error {
	for _, name := range t.Names() {
		childDir := filepath.Join(dir, name)
		if !fsys.IsDir(childDir) {
			if err := fsys.Mkdir(childDir, 0755); err != nil && !errors.Is(err, fs.ErrExist) {
				return fmt.Errorf("failed to create folder %s: %w", childDir, err)
			}
		}
		if err := t.children[name].materializeChildren(fsys, childDir); err != nil {
			return err
		}
	}
	return nil
}

// Package graph walks the project dependency graph. Projects are shared
// between parents, so every walk keys its visited set on instance identity.
package graph

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-factory/internal/models"
)

// CycleError reports a dependency path that leads back to one of its own projects.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Path, " -> "))
}

// Walk visits every project reachable from root once, in pre-order, following
// Depends in declaration order. Returning false from visit skips that
// project's dependencies.
func Walk(root *models.Project, visit func(*models.Project) bool) {
	visited := make(map[*models.Project]bool)

	var walk func(p *models.Project)
	walk = func(p *models.Project) {
		if visited[p] {
			return
		}
		visited[p] = true

		if !visit(p) {
			return
		}
		for _, dep := range p.Depends {
			walk(dep)
		}
	}

	walk(root)
}

// FirstUnresolved returns the first unresolved project in pre-order, or nil.
func FirstUnresolved(root *models.Project) *models.Project {
	var found *models.Project
	Walk(root, func(p *models.Project) bool {
		if found != nil {
			return false
		}
		if p.Unresolved {
			found = p
			return false
		}
		return true
	})
	return found
}

// Closure returns the set of projects reachable from root, root included.
func Closure(root *models.Project) map[*models.Project]bool {
	set := make(map[*models.Project]bool)
	Walk(root, func(p *models.Project) bool {
		set[p] = true
		return true
	})
	return set
}

// TopologicalSort returns every project reachable from root exactly once,
// each one ahead of all of its dependencies.
func TopologicalSort(root *models.Project) ([]*models.Project, error) {
	postOrder, err := postOrder(root)
	if err != nil {
		return nil, err
	}

	sorted := make([]*models.Project, len(postOrder))
	for i, p := range postOrder {
		sorted[len(postOrder)-1-i] = p
	}
	return sorted, nil
}

// BuildOrder returns every project reachable from root with dependencies
// ahead of their dependents: the TopologicalSort result traversed in reverse.
func BuildOrder(root *models.Project) ([]*models.Project, error) {
	sorted, err := TopologicalSort(root)
	if err != nil {
		return nil, err
	}

	order := make([]*models.Project, 0, len(sorted))
	for i := len(sorted) - 1; i >= 0; i-- {
		order = append(order, sorted[i])
	}
	return order, nil
}

func postOrder(root *models.Project) ([]*models.Project, error) {
	// permanent: fully emitted; temporary: on the current DFS stack
	permanent := make(map[*models.Project]bool)
	temporary := make(map[*models.Project]bool)
	var stack []string
	var result []*models.Project

	var visit func(p *models.Project) error
	visit = func(p *models.Project) error {
		if permanent[p] {
			return nil
		}
		if temporary[p] {
			return &CycleError{Path: cyclePath(stack, p.Name)}
		}

		temporary[p] = true
		stack = append(stack, p.Name)

		for _, dep := range p.Depends {
			if err := visit(dep); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		delete(temporary, p)
		permanent[p] = true
		result = append(result, p)

		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return result, nil
}

func cyclePath(stack []string, name string) []string {
	for i, n := range stack {
		if n == name {
			path := append([]string(nil), stack[i:]...)
			return append(path, name)
		}
	}
	return append(append([]string(nil), stack...), name)
}

package descriptor

import (
	"fmt"

	"github.com/jakoblorz/go-factory/internal/filesystem"
	"github.com/jakoblorz/go-factory/internal/models"
)

// Options controls how a single descriptor node is interpreted.
type Options struct {
	// File names the descriptor in diagnostics
	File string

	// Root selects root defaults: application type and "." as path
	Root bool

	// Temporary descriptors only donate fields and are never registered
	Temporary bool
}

// Parser turns decoded descriptor objects into a shared project graph.
type Parser struct {
	registry *Registry
}

// NewParser creates a parser memoizing into registry
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Registry returns the memo the parser registers projects in.
func (p *Parser) Registry() *Registry {
	return p.registry
}

// ParseFile reads and parses the descriptor at path.
func (p *Parser) ParseFile(fs filesystem.FileSystem, path string, opts Options) (*models.Project, error) {
	root, err := ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	if opts.File == "" {
		opts.File = path
	}
	return p.Parse(root, opts)
}

// Parse builds a project from one decoded JSON object. Dependencies are
// parsed recursively; a name seen before yields the existing instance.
func (p *Parser) Parse(node interface{}, opts Options) (*models.Project, error) {
	obj, ok := node.(map[string]interface{})
	if !ok {
		return nil, formatError(opts.File, ErrInvalidFormat, "expected a JSON object that contains a project descriptor")
	}

	name, ok := obj["name"].(string)
	if !ok {
		return nil, formatError(opts.File, ErrMissingName, "")
	}

	if !opts.Temporary {
		if existing, found := p.registry.Lookup(name); found {
			return existing, nil
		}
	}

	project := models.NewProject(name, models.ProjectTypeLibrary)
	if opts.Root {
		project.Type = models.ProjectTypeApplication
	}
	if !opts.Temporary {
		p.registry.Register(project)
	}

	if v, ok := obj["description"].(string); ok {
		project.Description = v
	}
	if v, ok := obj["author"].(string); ok {
		project.Author = v
	}

	if raw, exists := obj["type"]; exists {
		typeName, _ := raw.(string)
		projectType, err := models.ParseProjectType(typeName)
		if err != nil {
			return nil, formatError(opts.File, ErrUnsupportedType, fmt.Sprintf("'%v'", raw))
		}
		project.Type = projectType
	}

	sources, err := stringList(obj, "sources", opts.File)
	if err != nil {
		return nil, err
	}
	for _, s := range sources {
		project.Sources = append(project.Sources, models.ParseSourceEntry(s))
	}

	headers, err := stringList(obj, "headers", opts.File)
	if err != nil {
		return nil, err
	}
	for _, h := range headers {
		project.Headers = append(project.Headers, models.NormalizePath(h))
	}

	if err := p.parseDepends(obj, project, opts.File); err != nil {
		return nil, err
	}

	if raw, exists := obj["path"]; exists {
		path, ok := raw.(string)
		if !ok {
			return nil, formatError(opts.File, ErrInvalidFormat, "the project path must be a string")
		}
		project.Path = models.NormalizePath(path)
	}

	urls, err := stringList(obj, "url", opts.File)
	if err != nil {
		return nil, err
	}
	project.URLs = urls

	libs, err := stringList(obj, "stdlib", opts.File)
	if err != nil {
		return nil, err
	}
	for _, libName := range libs {
		lib, err := models.ParseStdlib(libName)
		if err != nil {
			return nil, formatError(opts.File, ErrUnknownStdlib, fmt.Sprintf("'%s'", libName))
		}
		project.Stdlib = project.Stdlib.With(lib)
	}

	if project.Path == "" {
		if opts.Root {
			project.Path = "."
		} else {
			project.Unresolved = true
		}
	}

	if len(project.Sources) == 0 {
		if opts.Root || project.Path != "" {
			return nil, formatError(opts.File, ErrMissingSources, fmt.Sprintf("project '%s'", name))
		}
		project.Unresolved = true
	}

	if project.IsLibrary() && len(project.Headers) == 0 {
		if project.Path != "" {
			return nil, formatError(opts.File, ErrMissingHeaders, fmt.Sprintf("project '%s'", name))
		}
		project.Unresolved = true
	}

	return project, nil
}

func (p *Parser) parseDepends(obj map[string]interface{}, project *models.Project, file string) error {
	raw, exists := obj["depends"]
	if !exists {
		raw, exists = obj["dependencies"]
	}
	if !exists {
		return nil
	}

	items, ok := raw.([]interface{})
	if !ok {
		return formatError(file, ErrInvalidFormat, "expected a list of dependencies")
	}

	project.Depends = make([]*models.Project, 0, len(items))
	for _, item := range items {
		dependency, err := p.Parse(item, Options{File: file})
		if err != nil {
			return err
		}
		project.Depends = append(project.Depends, dependency)
	}

	return nil
}

// stringList reads a key that holds either one string or an array of
// strings; non-string array items are skipped.
func stringList(obj map[string]interface{}, key, file string) ([]string, error) {
	switch v := obj[key].(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []interface{}:
		var result []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		return result, nil
	default:
		return nil, formatError(file, ErrInvalidFormat, fmt.Sprintf("'%s' must be a string or a list of strings", key))
	}
}

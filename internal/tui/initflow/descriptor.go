package initflow

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jakoblorz/go-factory/internal/descriptor"
	"github.com/jakoblorz/go-factory/internal/filesystem"
	"github.com/jakoblorz/go-factory/internal/models"
)

// ErrDescriptorExists is returned instead of overwriting a descriptor.
var ErrDescriptorExists = errors.New("descriptor already exists")

// Answers are the values collected by the forms.
type Answers struct {
	Name        string
	Description string
	Author      string
	Type        models.ProjectType
	Sources     string
	Headers     string
	Stdlib      []string
}

type document struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Author      string   `json:"author,omitempty"`
	Type        string   `json:"type"`
	Sources     []string `json:"sources"`
	Headers     []string `json:"headers,omitempty"`
	Stdlib      []string `json:"stdlib,omitempty"`
}

// Encode renders answers as descriptor JSON and checks that the result
// parses as a root descriptor.
func Encode(a Answers) ([]byte, error) {
	doc := document{
		Name:        strings.TrimSpace(a.Name),
		Description: strings.TrimSpace(a.Description),
		Author:      strings.TrimSpace(a.Author),
		Type:        a.Type.String(),
		Sources:     splitList(a.Sources),
		Headers:     splitList(a.Headers),
		Stdlib:      a.Stdlib,
	}
	if doc.Type == "" {
		doc.Type = models.ProjectTypeApplication.String()
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode descriptor: %w", err)
	}
	data = append(data, '\n')

	node, err := descriptor.Decode(descriptor.FileName, data)
	if err != nil {
		return nil, err
	}
	parser := descriptor.NewParser(descriptor.NewRegistry())
	if _, err := parser.Parse(node, descriptor.Options{File: descriptor.FileName, Root: true, Temporary: true}); err != nil {
		return nil, err
	}

	return data, nil
}

// Write encodes answers and writes them to path unless a file is there.
func Write(fs filesystem.FileSystem, path string, a Answers) (*Result, error) {
	if fs.Exists(path) {
		return nil, fmt.Errorf("%w: %s", ErrDescriptorExists, path)
	}

	data, err := Encode(a)
	if err != nil {
		return nil, err
	}

	if err := fs.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return &Result{Path: path, Answers: a, Descriptor: data}, nil
}

// splitList splits on commas and whitespace, dropping empty items.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

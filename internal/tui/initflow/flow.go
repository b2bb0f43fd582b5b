// Package initflow creates a root descriptor interactively.
package initflow

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	huh "github.com/charmbracelet/huh"
	"github.com/jakoblorz/go-factory/internal/filesystem"
	"github.com/jakoblorz/go-factory/internal/models"
	"github.com/jakoblorz/go-factory/internal/tui"
)

// Flow orchestrates the init command using huh forms.
type Flow struct {
	fs    filesystem.FileSystem
	path  string
	theme *huh.Theme
}

// Result captures the successful output of the flow.
type Result struct {
	Path       string
	Answers    Answers
	Descriptor []byte
}

// NewFlow constructs a Flow writing to path with the orange/blue huh theme.
func NewFlow(fs filesystem.FileSystem, path string) *Flow {
	return &Flow{
		fs:    fs,
		path:  path,
		theme: tui.NewHuhTheme(),
	}
}

// Run executes the forms sequentially; returns nil result on user abort.
func (f *Flow) Run() (*Result, error) {
	if f.fs.Exists(f.path) {
		return nil, fmt.Errorf("%w: %s", ErrDescriptorExists, f.path)
	}

	var answers Answers

	if err := f.describeProject(&answers); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	if err := f.inputLayout(&answers); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	stdlib, err := f.selectStdlib()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}
	answers.Stdlib = stdlib

	return Write(f.fs, f.path, answers)
}

func (f *Flow) describeProject(answers *Answers) error {
	projectType := string(models.ProjectTypeApplication)

	keyMap := huh.NewDefaultKeyMap()
	keyMap.Select.Filter.SetEnabled(false)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&answers.Name).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("application: linked into an executable", string(models.ProjectTypeApplication)),
					huh.NewOption("library: compiled for the applications depending on it", string(models.ProjectTypeLibrary)),
				).
				Value(&projectType),
			huh.NewInput().
				Title("Description").
				Value(&answers.Description),
			huh.NewInput().
				Title("Author").
				Value(&answers.Author),
		).
			Title("Project").
			Description("Describe the project built from this directory."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		return err
	}

	parsed, err := models.ParseProjectType(projectType)
	if err != nil {
		return err
	}
	answers.Type = parsed
	return nil
}

func (f *Flow) inputLayout(answers *Answers) error {
	answers.Sources = "src/*.c"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Sources").
				Description("Files or single-segment patterns, separated by commas.").
				Value(&answers.Sources).
				Validate(func(v string) error {
					if len(splitList(v)) == 0 {
						return fmt.Errorf("at least one source is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Headers").
				Description("Include directories, separated by commas.").
				Placeholder("include").
				Value(&answers.Headers).
				Validate(func(v string) error {
					if answers.Type == models.ProjectTypeLibrary && len(splitList(v)) == 0 {
						return fmt.Errorf("libraries must declare at least one include directory")
					}
					return nil
				}),
		).
			Title("Layout"),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen())

	return form.Run()
}

func (f *Flow) selectStdlib() ([]string, error) {
	selected := make([]string, 0, len(models.StdlibNames))
	opts := make([]huh.Option[string], 0, len(models.StdlibNames))
	for _, name := range models.StdlibNames {
		opts = append(opts, huh.NewOption(name, name))
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.MultiSelect.Filter.SetEnabled(false)
	keyMap.MultiSelect.Toggle.SetKeys(" ")
	keyMap.MultiSelect.Toggle.SetHelp("space", "toggle selection")
	keyMap.MultiSelect.Submit.SetKeys("enter")
	keyMap.MultiSelect.Submit.SetHelp("enter", "continue")

	form := huh.NewForm(
		huh.NewGroup(
			newStdlibMultiSelect(&selected).
				Options(opts...),
		).
			Title("Platform Libraries").
			Description("Select the libraries the project links against."),
	).
		WithTheme(f.theme).
		WithShowHelp(true).
		WithProgramOptions(tea.WithAltScreen()).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		return nil, err
	}

	return selected, nil
}

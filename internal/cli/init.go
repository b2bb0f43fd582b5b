package cli

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-factory/internal/models"
	"github.com/jakoblorz/go-factory/internal/tui/initflow"
	"github.com/spf13/cobra"
)

// InitCommand handles the init command
type InitCommand struct {
	env *Environment
}

// NewInitCommand creates a new init command
func NewInitCommand(env *Environment) *cobra.Command {
	cmd := &InitCommand{env: env}

	cobraCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a factory.json in the current directory",
		Long: `Creates a root descriptor. Without --name the values are asked for
interactively; with --name the descriptor is written from flags.`,
		Example: `  # Interactive
  factory init

  # Non-interactive
  factory init --name server --sources "src/*.c" --headers include --stdlib threads`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("name", "", "Project name (skips the interactive forms)")
	cobraCmd.Flags().String("type", string(models.ProjectTypeApplication), "Project type: application or library")
	cobraCmd.Flags().String("sources", "src/*.c", "Sources, separated by commas")
	cobraCmd.Flags().String("headers", "", "Include directories, separated by commas")
	cobraCmd.Flags().StringSlice("stdlib", nil, "Platform libraries: "+fmt.Sprint(models.StdlibNames))
	cobraCmd.Flags().String("description", "", "Project description")
	cobraCmd.Flags().String("author", "", "Project author")

	return cobraCmd
}

// Run executes the init command
func (c *InitCommand) Run(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString(fileFlag)
	path := file
	if !filepath.IsAbs(path) {
		cwd, err := c.env.FS.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		path = filepath.Join(cwd, file)
	}

	name, _ := cmd.Flags().GetString("name")

	var result *initflow.Result
	var err error
	if name == "" {
		result, err = initflow.NewFlow(c.env.FS, path).Run()
		if err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
	} else {
		result, err = c.fromFlags(cmd, path, name)
		if err != nil {
			return err
		}
	}

	if result == nil {
		return nil
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), initflow.RenderSuccess(result))

	return nil
}

func (c *InitCommand) fromFlags(cmd *cobra.Command, path, name string) (*initflow.Result, error) {
	typeName, _ := cmd.Flags().GetString("type")
	projectType, err := models.ParseProjectType(typeName)
	if err != nil {
		return nil, err
	}

	stdlib, _ := cmd.Flags().GetStringSlice("stdlib")
	for _, lib := range stdlib {
		if _, err := models.ParseStdlib(lib); err != nil {
			return nil, err
		}
	}

	sources, _ := cmd.Flags().GetString("sources")
	headers, _ := cmd.Flags().GetString("headers")
	description, _ := cmd.Flags().GetString("description")
	author, _ := cmd.Flags().GetString("author")

	return initflow.Write(c.env.FS, path, initflow.Answers{
		Name:        name,
		Description: description,
		Author:      author,
		Type:        projectType,
		Sources:     sources,
		Headers:     headers,
		Stdlib:      stdlib,
	})
}

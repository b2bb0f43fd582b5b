package cli

import (
	"fmt"

	"github.com/jakoblorz/go-factory/internal/build"
	"github.com/spf13/cobra"
)

// BuildCommand handles the build command
type BuildCommand struct {
	env *Environment
}

// NewBuildCommand creates a new build command
func NewBuildCommand(env *Environment) *cobra.Command {
	cmd := &BuildCommand{env: env}

	cobraCmd := &cobra.Command{
		Use:   "build",
		Short: "Resolve dependencies, then compile and link every target",
		Long: `Resolves the dependency graph of the root descriptor, then compiles every
source of every project and links every application, dependencies first.

Objects are written to <build-root>/<target>/<project>/ and executables to
<build-root>/<target>/<project>.exe. A failed compile does not stop the
remaining compiles; the command exits non-zero when any step failed.`,
		Example: `  # Build debug and release
  factory build

  # Build only the release target with clang
  factory build --target release --cc clang`,
		RunE: cmd.Run,
	}

	return cobraCmd
}

// Run executes the build command
func (c *BuildCommand) Run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	ws, err := loadWorkspace(cmd, c.env, out)
	if err != nil {
		return err
	}

	runner := c.env.NewRunner(ws.RootPath, out, cmd.ErrOrStderr())
	builder := build.NewBuilder(ws.FileSystem(), runner, buildOptionsFromCmd(cmd, c.env), out)

	report, err := builder.Build(commandContext(cmd), ws.Root, targetsFromCmd(cmd))
	if report != nil {
		fmt.Fprint(out, build.Summary(report))
	}
	return err
}

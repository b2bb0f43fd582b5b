package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	"github.com/jakoblorz/go-factory/internal/build"
	"github.com/spf13/cobra"
)

// PlanCommand handles the plan command
type PlanCommand struct {
	env *Environment
}

// NewPlanCommand creates a new plan command
func NewPlanCommand(env *Environment) *cobra.Command {
	cmd := &PlanCommand{env: env}

	cobraCmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the build order and every command without running them",
		Long: `Resolves dependencies (fetching them when needed) and prints, for every
target, the build order and the compile and link commands a build would run.
Nothing is compiled and no output folders are created.`,
		Example: `  # Human-readable plan
  factory plan

  # JSON for scripting
  factory plan --format json

  # Custom rendering (text/template with sprig functions)
  factory plan --template plan.tmpl`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("format", "text", "Output format: text or json")
	cobraCmd.Flags().String("template", "", "Render the plan with a text/template file")

	return cobraCmd
}

// Run executes the plan command
func (c *PlanCommand) Run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	templatePath, _ := cmd.Flags().GetString("template")
	out := cmd.OutOrStdout()

	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format: %s (must be text or json)", format)
	}

	// keep fetch progress off stdout so JSON output stays parseable
	ws, err := loadWorkspace(cmd, c.env, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	builder := build.NewBuilder(ws.FileSystem(), nil, buildOptionsFromCmd(cmd, c.env), io.Discard)
	plan, err := builder.Plan(ws.Root, targetsFromCmd(cmd))
	if err != nil {
		return err
	}

	if format == "json" {
		return c.outputJSON(out, plan)
	}

	var tmpl *template.Template
	if templatePath != "" {
		tmpl, err = ParseTemplateFile(c.env.FS, templatePath)
	} else {
		tmpl, err = ParseDefaultTemplate()
	}
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	rendered, err := ExecuteTemplate(tmpl, plan)
	if err != nil {
		return fmt.Errorf("failed to render plan: %w", err)
	}

	_, err = fmt.Fprint(out, rendered)
	return err
}

func (c *PlanCommand) outputJSON(out io.Writer, plan *build.Plan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}

	_, err = fmt.Fprintln(out, string(data))
	return err
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jakoblorz/go-factory/internal/graph"
	"github.com/jakoblorz/go-factory/internal/models"
	"github.com/jakoblorz/go-factory/internal/tui"
	"github.com/spf13/cobra"
)

// GraphCommand handles the graph command
type GraphCommand struct {
	env *Environment
}

// ProjectInfo describes one project of the graph output
type ProjectInfo struct {
	Name        string   `json:"name"`
	FixedName   string   `json:"fixedName"`
	Type        string   `json:"type"`
	Path        string   `json:"path"`
	Description string   `json:"description,omitempty"`
	Author      string   `json:"author,omitempty"`
	Sources     []string `json:"sources"`
	Headers     []string `json:"headers,omitempty"`
	Stdlib      []string `json:"stdlib,omitempty"`
	Depends     []string `json:"depends,omitempty"`
}

// GraphOutput represents the complete graph output
type GraphOutput struct {
	Root     string        `json:"root"`
	Order    []string      `json:"order"`
	Projects []ProjectInfo `json:"projects"`
}

// NewGraphCommand creates a new graph command
func NewGraphCommand(env *Environment) *cobra.Command {
	cmd := &GraphCommand{env: env}

	cobraCmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the resolved dependency tree and build order",
		Long: `Resolves the root descriptor (fetching dependencies when needed) and
prints the dependency tree followed by the order projects are built in.`,
		Example: `  # Show the tree
  factory graph

  # Output JSON for scripting
  factory graph --format json`,
		RunE: cmd.Run,
	}

	cobraCmd.Flags().String("format", "text", "Output format: text or json")

	return cobraCmd
}

// Run executes the graph command
func (c *GraphCommand) Run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	if format != "text" && format != "json" {
		return fmt.Errorf("unsupported format: %s (must be text or json)", format)
	}

	ws, err := loadWorkspace(cmd, c.env, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	order, err := graph.BuildOrder(ws.Root)
	if err != nil {
		return err
	}

	if format == "json" {
		return c.outputJSON(out, ws.Root, order)
	}
	return c.outputText(out, ws.Root, order)
}

func (c *GraphCommand) outputJSON(out io.Writer, root *models.Project, order []*models.Project) error {
	output := GraphOutput{Root: root.Name}
	for _, p := range order {
		output.Order = append(output.Order, p.Name)
		output.Projects = append(output.Projects, projectInfo(p))
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	_, err = fmt.Fprintln(out, string(data))
	return err
}

func (c *GraphCommand) outputText(out io.Writer, root *models.Project, order []*models.Project) error {
	var b strings.Builder

	writeNode(&b, root)
	seen := map[*models.Project]bool{root: true}
	writeChildren(&b, root, "", seen)

	names := make([]string, len(order))
	for i, p := range order {
		names[i] = p.Name
	}
	b.WriteString("\n")
	b.WriteString("Build order: " + strings.Join(names, " → ") + "\n")

	_, err := fmt.Fprint(out, b.String())
	return err
}

func writeChildren(b *strings.Builder, p *models.Project, prefix string, seen map[*models.Project]bool) {
	for i, dep := range p.Depends {
		last := i == len(p.Depends)-1
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}

		b.WriteString(prefix + branch)
		if seen[dep] {
			b.WriteString(dep.Name + " " + tui.SubtleStyle.Render("(see above)") + "\n")
			continue
		}
		seen[dep] = true

		writeNode(b, dep)
		writeChildren(b, dep, prefix+indent, seen)
	}
}

func writeNode(b *strings.Builder, p *models.Project) {
	b.WriteString(fmt.Sprintf("%s (%s) %s", p.Name, p.Type, tui.SubtleStyle.Render(p.Path)))
	if p.Description != "" {
		b.WriteString(" " + tui.DescStyle.Render(p.Description))
	}
	b.WriteString("\n")
}

func projectInfo(p *models.Project) ProjectInfo {
	info := ProjectInfo{
		Name:        p.Name,
		FixedName:   p.FixedName,
		Type:        p.Type.String(),
		Path:        p.Path,
		Description: p.Description,
		Author:      p.Author,
		Headers:     p.Headers,
		Stdlib:      p.Stdlib.Names(),
	}
	for _, s := range p.Sources {
		info.Sources = append(info.Sources, s.String())
	}
	for _, dep := range p.Depends {
		info.Depends = append(info.Depends, dep.Name)
	}
	return info
}

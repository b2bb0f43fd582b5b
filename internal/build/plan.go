package build

import (
	"fmt"
	"path"

	"github.com/jakoblorz/go-factory/internal/compiler"
	"github.com/jakoblorz/go-factory/internal/foldertree"
	"github.com/jakoblorz/go-factory/internal/graph"
	"github.com/jakoblorz/go-factory/internal/models"
	"github.com/jakoblorz/go-factory/internal/sources"
	"github.com/jakoblorz/go-factory/internal/toolchain"
)

// Step is one tool invocation of a plan.
type Step struct {
	Project *models.Project   `json:"-"`
	Input   string            `json:"input,omitempty"`
	Output  string            `json:"output"`
	Command toolchain.Command `json:"-"`
	Line    string            `json:"command"`
}

func newStep(project *models.Project, input, output string, cmd toolchain.Command) Step {
	return Step{Project: project, Input: input, Output: output, Command: cmd, Line: cmd.String()}
}

// ProjectPlan holds everything needed to build one project for one target.
type ProjectPlan struct {
	Project  *models.Project    `json:"-"`
	Name     string             `json:"name"`
	Type     models.ProjectType `json:"type"`
	Sources  *models.SourceList `json:"-"`
	Includes compiler.Flags     `json:"includes"`
	Stdlib   models.StdlibMask  `json:"-"`
	Compile  []Step             `json:"compile"`
	Link     *Step              `json:"link,omitempty"`
}

// TargetPlan is the ordered build of one target.
type TargetPlan struct {
	Name     string             `json:"name"`
	Dir      string             `json:"dir"`
	Projects []*ProjectPlan     `json:"projects"`
	Folders  []string           `json:"folders"`
	Objects  *models.ObjectList `json:"-"`
	Profile  compiler.Profile   `json:"-"`
	Tree     *foldertree.Tree   `json:"-"`
}

// Plan covers every requested target. Planning enumerates all sources up
// front, so a missing source stops the run before anything is compiled.
type Plan struct {
	BuildRoot string           `json:"buildRoot"`
	Targets   []*TargetPlan    `json:"targets"`
	Tree      *foldertree.Tree `json:"-"`
}

// Plan computes the commands for targets without running anything.
func (b *Builder) Plan(root *models.Project, targets []string) (*Plan, error) {
	if len(targets) == 0 {
		targets = compiler.DefaultTargets
	}

	order, err := graph.BuildOrder(root)
	if err != nil {
		return nil, err
	}

	plan := &Plan{BuildRoot: b.buildRoot, Tree: foldertree.New()}
	enumerator := sources.NewEnumerator(b.fs, b.host.ObjectExt)

	for _, target := range targets {
		targetPlan, err := b.planTarget(target, order, plan.Tree.Ensure(target), enumerator)
		if err != nil {
			return nil, err
		}
		plan.Targets = append(plan.Targets, targetPlan)
	}

	return plan, nil
}

func (b *Builder) planTarget(target string, order []*models.Project, tree *foldertree.Tree, enumerator *sources.Enumerator) (*TargetPlan, error) {
	profile := b.host.ForTarget(target)
	targetPlan := &TargetPlan{
		Name:    target,
		Dir:     path.Join(b.buildRoot, target),
		Objects: models.NewObjectList(),
		Profile: profile,
		Tree:    tree,
	}

	for _, project := range order {
		list, err := enumerator.Enumerate(project, targetPlan.Objects, tree)
		if err != nil {
			return nil, err
		}

		headers, mask := CollectHeaders(project)
		projectPlan := &ProjectPlan{
			Project:  project,
			Name:     project.Name,
			Type:     project.Type,
			Sources:  list,
			Includes: profile.IncludeFlags(headers),
			Stdlib:   mask,
		}

		for _, source := range list.Sources() {
			object := path.Join(targetPlan.Dir, source.ObjectPath)
			cmd := profile.CompileCommand(source.CompilePath, projectPlan.Includes, object)
			projectPlan.Compile = append(projectPlan.Compile, newStep(project, source.CompilePath, object, cmd))
		}

		targetPlan.Projects = append(targetPlan.Projects, projectPlan)
	}

	// the object list is complete only once every project is enumerated
	for _, projectPlan := range targetPlan.Projects {
		if !projectPlan.Project.IsApplication() {
			continue
		}

		var objects, patterns []string
		for _, entry := range targetPlan.Objects.EntriesFor(graph.Closure(projectPlan.Project)) {
			object := path.Join(targetPlan.Dir, entry.Path)
			objects = append(objects, object)
			if entry.Pattern {
				patterns = append(patterns, object)
			}
		}
		if len(objects) == 0 {
			return nil, fmt.Errorf("failed to plan %s: application '%s' has no objects to link", target, projectPlan.Name)
		}

		exe := path.Join(targetPlan.Dir, projectPlan.Project.FixedName+b.host.ExeExt)
		cmd := profile.LinkCommand(objects, projectPlan.Stdlib, exe).WithGlobs(patterns...)
		link := newStep(projectPlan.Project, "", exe, cmd)
		projectPlan.Link = &link
	}

	targetPlan.Folders = []string{targetPlan.Dir}
	for _, p := range tree.Paths() {
		targetPlan.Folders = append(targetPlan.Folders, path.Join(targetPlan.Dir, p))
	}

	return targetPlan, nil
}

// Commands lists every step of the target in execution order.
func (t *TargetPlan) Commands() []Step {
	var steps []Step
	for _, p := range t.Projects {
		steps = append(steps, p.Compile...)
		if p.Link != nil {
			steps = append(steps, *p.Link)
		}
	}
	return steps
}

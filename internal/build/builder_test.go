package build

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jakoblorz/go-factory/internal/compiler"
	"github.com/jakoblorz/go-factory/internal/descriptor"
	"github.com/jakoblorz/go-factory/internal/filesystem"
	"github.com/jakoblorz/go-factory/internal/graph"
	"github.com/jakoblorz/go-factory/internal/models"
	"github.com/jakoblorz/go-factory/internal/sources"
	"github.com/jakoblorz/go-factory/internal/toolchain"
	"github.com/stretchr/testify/require"
)

const workspaceRoot = "/workspace"

type fixture struct {
	mfs     *filesystem.MockFileSystem
	runner  *toolchain.MockRunner
	builder *Builder
	out     *bytes.Buffer
}

func newFixture(t *testing.T, files ...string) *fixture {
	t.Helper()

	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir(workspaceRoot)
	for _, f := range files {
		mfs.AddFile(workspaceRoot+"/"+f, []byte("int main(void) { return 0; }\n"))
	}

	runner := toolchain.NewMockRunner()
	out := &bytes.Buffer{}
	builder := NewBuilder(filesystem.NewRooted(mfs, workspaceRoot), runner, Options{Host: compiler.HostFor("linux")}, out)

	return &fixture{mfs: mfs, runner: runner, builder: builder, out: out}
}

func parseRoot(t *testing.T, text string) *models.Project {
	t.Helper()
	node, err := descriptor.Decode(descriptor.FileName, []byte(text))
	require.NoError(t, err)
	root, err := descriptor.NewParser(descriptor.NewRegistry()).Parse(node, descriptor.Options{File: descriptor.FileName, Root: true})
	require.NoError(t, err)
	return root
}

func TestBuild_SingleSource(t *testing.T) {
	f := newFixture(t, "main.c")
	root := parseRoot(t, `{"name": "app", "sources": "main.c"}`)

	report, err := f.builder.Build(context.Background(), root, nil)
	require.NoError(t, err)

	require.Equal(t, []string{
		"gcc main.c -c -g -Werror -o build/debug/app/main.o",
		"gcc build/debug/app/main.o -o build/debug/app.exe",
		"gcc main.c -c -O3 -Werror -o build/release/app/main.o",
		"gcc build/release/app/main.o -o build/release/app.exe",
	}, f.runner.CommandLines())

	require.Equal(t, []string{
		"/workspace/build",
		"/workspace/build/debug",
		"/workspace/build/debug/app",
		"/workspace/build/release",
		"/workspace/build/release/app",
	}, f.mfs.Dirs("/workspace/build"))

	require.Equal(t, []string{"build/debug/app/main.o"}, report.Target("debug").Compiled)
	require.Equal(t, []string{"build/release/app.exe"}, report.Target("release").Linked)
	require.NoError(t, report.Err())

	snaps.MatchSnapshot(t, f.out.String())
}

func TestBuild_LibraryAndApplication(t *testing.T) {
	f := newFixture(t, "main.c", "libs/lib/src/a.c", "libs/lib/src/b.c")
	root := parseRoot(t, `{
		"name": "app",
		"sources": "main.c",
		"headers": "include",
		"stdlib": "threads",
		"depends": [{
			"name": "lib",
			"type": "library",
			"path": "libs/lib",
			"sources": "src/*.c",
			"headers": "include",
			"stdlib": "math"
		}]
	}`)

	_, err := f.builder.Build(context.Background(), root, []string{compiler.TargetDebug})
	require.NoError(t, err)

	require.Equal(t, []string{
		"gcc libs/lib/src/a.c -c -g -Werror -Ilibs/lib/include -o build/debug/lib/src/a.o",
		"gcc libs/lib/src/b.c -c -g -Werror -Ilibs/lib/include -o build/debug/lib/src/b.o",
		"gcc main.c -c -g -Werror -Iinclude -Ilibs/lib/include -o build/debug/app/main.o",
		"gcc build/debug/lib/src/*.o build/debug/app/main.o -lpthread -lm -o build/debug/app.exe",
	}, f.runner.CommandLines())

	require.True(t, f.mfs.IsDir("/workspace/build/debug/lib/src"))
	require.False(t, f.mfs.Exists("/workspace/build/release"))
}

func TestBuild_CompileFailureIsCollected(t *testing.T) {
	f := newFixture(t, "main.c", "broken.c", "util.c")
	f.runner.FailWhen = func(cmd toolchain.Command) bool {
		return cmd.Args[0] == "broken.c"
	}
	root := parseRoot(t, `{"name": "app", "sources": ["main.c", "broken.c", "util.c"]}`)

	report, err := f.builder.Build(context.Background(), root, []string{compiler.TargetDebug})
	require.ErrorIs(t, err, ErrBuildFailed)

	debug := report.Target("debug")
	require.Equal(t, []string{"build/debug/app/main.o", "build/debug/app/util.o"}, debug.Compiled)
	require.Len(t, debug.Failed, 1)
	require.Equal(t, "build/debug/app/broken.o", debug.Failed[0].Output)
	require.True(t, toolchain.IsExternalToolError(debug.Failed[0].Err))

	// linking is still attempted
	require.Len(t, f.runner.Commands(), 4)
	require.Equal(t, []string{"build/debug/app.exe"}, debug.Linked)
}

func TestBuild_LinkFailure(t *testing.T) {
	f := newFixture(t, "main.c")
	f.runner.FailWhen = func(cmd toolchain.Command) bool {
		return cmd.Args[len(cmd.Args)-1] == "build/debug/app.exe"
	}
	root := parseRoot(t, `{"name": "app", "sources": "main.c"}`)

	report, err := f.builder.Build(context.Background(), root, nil)
	require.ErrorIs(t, err, ErrBuildFailed)
	require.Empty(t, report.Target("debug").Linked)
	require.Equal(t, []string{"build/release/app.exe"}, report.Target("release").Linked)
	require.Contains(t, Summary(report), "debug: 1 compiled, 0 linked, 1 failed")
}

func TestBuild_MissingSourceStopsBeforeCompiling(t *testing.T) {
	f := newFixture(t, "main.c")
	root := parseRoot(t, `{"name": "app", "sources": ["main.c", "gone.c"]}`)

	_, err := f.builder.Build(context.Background(), root, nil)

	var sourceErr *sources.SourceError
	require.True(t, errors.As(err, &sourceErr))
	require.Empty(t, f.runner.Commands())
	require.False(t, f.mfs.Exists("/workspace/build"))
}

func TestBuild_FolderFailureIsFatal(t *testing.T) {
	f := newFixture(t, "main.c")
	f.mfs.FailMkdir("/workspace/build/debug", nil)
	root := parseRoot(t, `{"name": "app", "sources": "main.c"}`)

	_, err := f.builder.Build(context.Background(), root, nil)
	require.Error(t, err)
	require.Empty(t, f.runner.Commands())
}

func TestBuild_NestedBuildRoot(t *testing.T) {
	f := newFixture(t, "main.c")
	f.builder = NewBuilder(filesystem.NewRooted(f.mfs, workspaceRoot), f.runner, Options{
		BuildRoot: "out/build",
		Host:      compiler.HostFor("linux"),
	}, f.out)
	root := parseRoot(t, `{"name": "app", "sources": "main.c"}`)

	_, err := f.builder.Build(context.Background(), root, []string{compiler.TargetDebug})
	require.NoError(t, err)

	require.Equal(t, []string{
		"/workspace/out",
		"/workspace/out/build",
		"/workspace/out/build/debug",
		"/workspace/out/build/debug/app",
	}, f.mfs.Dirs("/workspace/out"))
	require.Equal(t, "gcc main.c -c -g -Werror -o out/build/debug/app/main.o", f.runner.CommandLines()[0])
}

func TestBuild_Cycle(t *testing.T) {
	f := newFixture(t, "a.c", "b.c")

	a := models.NewProject("a", models.ProjectTypeApplication)
	a.Path = "."
	a.Sources = []models.SourceEntry{{Pattern: "a.c"}}
	b := models.NewProject("b", models.ProjectTypeLibrary)
	b.Path = "."
	b.Sources = []models.SourceEntry{{Pattern: "b.c"}}
	b.Headers = []string{"."}
	a.Depends = []*models.Project{b}
	b.Depends = []*models.Project{a}

	_, err := f.builder.Build(context.Background(), a, nil)

	var cycleErr *graph.CycleError
	require.True(t, errors.As(err, &cycleErr))
	require.Empty(t, f.runner.Commands())
}

func TestBuild_Verbose(t *testing.T) {
	f := newFixture(t, "main.c")
	f.builder.verbose = true
	root := parseRoot(t, `{"name": "app", "sources": "main.c"}`)

	_, err := f.builder.Build(context.Background(), root, []string{compiler.TargetRelease})
	require.NoError(t, err)
	require.True(t, strings.Contains(f.out.String(), "$ gcc main.c -c -O3 -Werror -o build/release/app/main.o"))
}

func TestCollectHeaders_Diamond(t *testing.T) {
	lib := func(name string, stdlib models.StdlibMask, deps ...*models.Project) *models.Project {
		p := models.NewProject(name, models.ProjectTypeLibrary)
		p.Path = "ext/" + name
		p.Headers = []string{"include"}
		p.Stdlib = stdlib
		p.Depends = deps
		return p
	}

	d := lib("d", models.StdlibMask(0).With(models.StdlibSockets))
	b := lib("b", models.StdlibMask(0).With(models.StdlibThreads), d)
	c := lib("c", 0, d)
	a := models.NewProject("a", models.ProjectTypeApplication)
	a.Path = "."
	a.Headers = []string{"include", "."}
	a.Depends = []*models.Project{b, c}

	headers, mask := CollectHeaders(a)
	require.Equal(t, []string{"include", ".", "ext/b/include", "ext/d/include", "ext/c/include"}, headers)
	require.True(t, mask.Has(models.StdlibThreads))
	require.True(t, mask.Has(models.StdlibSockets))
	require.False(t, mask.Has(models.StdlibMath))
}

func TestPlan_Commands(t *testing.T) {
	f := newFixture(t, "src/main.c", "src/io.c")
	root := parseRoot(t, `{"name": "tool", "sources": "src/*.c"}`)

	plan, err := f.builder.Plan(root, nil)
	require.NoError(t, err)
	require.Len(t, plan.Targets, 2)

	var lines []string
	for _, step := range plan.Targets[0].Commands() {
		lines = append(lines, step.Line)
	}
	require.Equal(t, []string{
		"gcc src/io.c -c -g -Werror -o build/debug/tool/src/io.o",
		"gcc src/main.c -c -g -Werror -o build/debug/tool/src/main.o",
		"gcc build/debug/tool/src/*.o -o build/debug/tool.exe",
	}, lines)

	// planning alone touches nothing
	require.Empty(t, f.runner.Commands())
	require.False(t, f.mfs.Exists("/workspace/build"))
}

func TestPlan_LinkMarksOnlyTemplateObjectsAsGlobs(t *testing.T) {
	f := newFixture(t, "a[1].c", "libs/lib/src/a.c")
	root := parseRoot(t, `{
		"name": "app",
		"sources": "a[1].c",
		"depends": [{"name": "lib", "type": "library", "path": "libs/lib", "sources": "src/*.c"}]
	}`)

	plan, err := f.builder.Plan(root, []string{compiler.TargetDebug})
	require.NoError(t, err)

	app := plan.Targets[0].Projects[1]
	require.Equal(t, "app", app.Name)
	require.NotNil(t, app.Link)
	require.Equal(t, "gcc build/debug/lib/src/*.o build/debug/app/a[1].o -o build/debug/app.exe", app.Link.Line)
	require.Equal(t, []string{"build/debug/lib/src/*.o"}, app.Link.Command.Globs)
	require.Empty(t, app.Compile[0].Command.Globs)
}

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/jakoblorz/go-factory/internal/build"
	"github.com/jakoblorz/go-factory/internal/filesystem"
	"github.com/jakoblorz/go-factory/internal/git"
	"github.com/jakoblorz/go-factory/internal/resolver"
	"github.com/jakoblorz/go-factory/internal/toolchain"
	"github.com/jakoblorz/go-factory/internal/tui/initflow"
	"github.com/jakoblorz/go-factory/internal/workspace"
	"github.com/stretchr/testify/require"
)

const testWorkspaceRoot = "/workspace"

const libDescriptor = `{
	"name": "lib",
	"type": "library",
	"description": "shared helpers",
	"sources": "src/*.c",
	"headers": "include",
	"stdlib": "math"
}`

type testEnv struct {
	env    *Environment
	fs     *filesystem.MockFileSystem
	git    *git.MockGitClient
	runner *toolchain.MockRunner
	vars   map[string]string
}

func newTestEnv(t *testing.T, setup func(*workspace.WorkspaceBuilder)) *testEnv {
	t.Helper()

	wb := workspace.NewWorkspaceBuilder(testWorkspaceRoot)
	if setup != nil {
		setup(wb)
	}
	fs := wb.Build()

	te := &testEnv{
		fs:     fs,
		git:    git.NewMockGitClient(fs, testWorkspaceRoot),
		runner: toolchain.NewMockRunner(),
		vars:   map[string]string{},
	}
	te.env = &Environment{
		FS: fs,
		NewGit: func(dir string, out io.Writer) git.GitClient {
			return te.git
		},
		NewRunner: func(dir string, stdout, stderr io.Writer) toolchain.Runner {
			return te.runner
		},
		Getenv: func(key string) string {
			return te.vars[key]
		},
	}
	return te
}

func (te *testEnv) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(te.env)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func singleSource(wb *workspace.WorkspaceBuilder) {
	wb.SetDescriptor(`{"name": "app", "sources": "main.c"}`).AddSource("main.c")
}

func withRemoteLib(wb *workspace.WorkspaceBuilder) {
	wb.SetDescriptor(`{
		"name": "app",
		"sources": "main.c",
		"depends": [{"name": "lib", "url": "https://example.com/lib.git"}]
	}`).AddSource("main.c")
}

func TestBuild_SingleSource(t *testing.T) {
	te := newTestEnv(t, singleSource)

	stdout, _, err := te.run("build")
	require.NoError(t, err)

	require.Equal(t, []string{
		"gcc main.c -c -g -Werror -o build/debug/app/main.o",
		"gcc build/debug/app/main.o -o build/debug/app.exe",
		"gcc main.c -c -O3 -Werror -o build/release/app/main.o",
		"gcc build/release/app/main.o -o build/release/app.exe",
	}, te.runner.CommandLines())
	require.True(t, te.fs.IsDir("/workspace/build/release/app"))

	snaps.MatchSnapshot(t, stdout)
}

func TestRoot_DefaultsToBuild(t *testing.T) {
	te := newTestEnv(t, singleSource)

	_, _, err := te.run("--target", "debug")
	require.NoError(t, err)
	require.Len(t, te.runner.Commands(), 2)
}

func TestBuild_FetchesDependency(t *testing.T) {
	te := newTestEnv(t, withRemoteLib)
	te.git.AddRemote("https://example.com/lib.git", map[string][]byte{
		"factory.json": []byte(libDescriptor),
		"src/lib.c":    []byte("int lib(void) { return 1; }\n"),
	})

	stdout, _, err := te.run("build", "--target", "debug")
	require.NoError(t, err)

	require.Equal(t, []string{
		"gcc ext/lib/src/lib.c -c -g -Werror -Iext/lib/include -o build/debug/lib/src/lib.o",
		"gcc main.c -c -g -Werror -Iext/lib/include -o build/debug/app/main.o",
		"gcc build/debug/lib/src/*.o build/debug/app/main.o -lm -o build/debug/app.exe",
	}, te.runner.CommandLines())
	require.Contains(t, stdout, "📥 Fetching lib from https://example.com/lib.git")
	require.Contains(t, stdout, "✓ Resolved lib (ext/lib)")
}

func TestBuild_FetchFailureStopsBeforeCompiling(t *testing.T) {
	te := newTestEnv(t, withRemoteLib)

	_, _, err := te.run("build")

	var depErr *resolver.DependencyError
	require.True(t, errors.As(err, &depErr))
	require.Equal(t, "lib", depErr.Project)
	require.ErrorIs(t, err, resolver.ErrNoSourceLocation)
	require.Empty(t, te.runner.Commands())
	require.False(t, te.fs.Exists("/workspace/build"))
}

func TestBuild_CompileFailure(t *testing.T) {
	te := newTestEnv(t, singleSource)
	te.runner.FailWhen = func(cmd toolchain.Command) bool {
		return cmd.Args[0] == "main.c"
	}

	stdout, _, err := te.run("build", "--target", "release")
	require.ErrorIs(t, err, build.ErrBuildFailed)
	require.Contains(t, stdout, "release: 0 compiled, 1 linked, 1 failed")
}

func TestBuild_CompilerSelection(t *testing.T) {
	te := newTestEnv(t, singleSource)
	te.vars["FACTORY_CC"] = "clang"

	_, _, err := te.run("build", "--target", "debug")
	require.NoError(t, err)
	require.Equal(t, "clang", te.runner.Commands()[0].Name)

	te.runner = toolchain.NewMockRunner()
	_, _, err = te.run("build", "--target", "debug", "--cc", "tcc", "--build-root", "out")
	require.NoError(t, err)
	require.Equal(t, "tcc main.c -c -g -Werror -o out/debug/app/main.o", te.runner.CommandLines()[0])
}

func TestBuild_NestedOutputRoots(t *testing.T) {
	te := newTestEnv(t, withRemoteLib)
	te.git.AddRemote("https://example.com/lib.git", map[string][]byte{
		"factory.json": []byte(libDescriptor),
		"src/lib.c":    []byte("int lib(void) { return 1; }\n"),
	})

	_, _, err := te.run("build", "--target", "debug", "--build-root", "out/build", "--ext-root", "deps/ext")
	require.NoError(t, err)

	require.Equal(t, []string{
		"gcc deps/ext/lib/src/lib.c -c -g -Werror -Ideps/ext/lib/include -o out/build/debug/lib/src/lib.o",
		"gcc main.c -c -g -Werror -Ideps/ext/lib/include -o out/build/debug/app/main.o",
		"gcc out/build/debug/lib/src/*.o out/build/debug/app/main.o -lm -o out/build/debug/app.exe",
	}, te.runner.CommandLines())
	require.True(t, te.fs.IsDir("/workspace/out/build/debug/app"))
	require.True(t, te.fs.IsDir("/workspace/out/build/debug/lib/src"))
	require.True(t, te.fs.Exists("/workspace/deps/ext/lib/factory.json"))
}

func TestBuild_DescriptorFlag(t *testing.T) {
	te := newTestEnv(t, func(wb *workspace.WorkspaceBuilder) {
		wb.AddFile("tools/factory.json", []byte(`{"name": "tool", "sources": "tool.c"}`)).AddSource("tools/tool.c")
	})

	_, _, err := te.run("build", "--file", "tools/factory.json", "--target", "debug")
	require.NoError(t, err)
	require.Equal(t, "gcc tool.c -c -g -Werror -o build/debug/tool/tool.o", te.runner.CommandLines()[0])
	require.True(t, te.fs.IsDir("/workspace/tools/build/debug/tool"))
}

func TestBuild_NoWorkspace(t *testing.T) {
	te := newTestEnv(t, nil)

	_, _, err := te.run("build")
	require.ErrorIs(t, err, workspace.ErrWorkspaceNotFound)
}

func TestPlan_Text(t *testing.T) {
	te := newTestEnv(t, withRemoteLib)
	te.git.AddRemote("https://example.com/lib.git", map[string][]byte{
		"factory.json": []byte(libDescriptor),
		"src/lib.c":    []byte("int lib(void) { return 1; }\n"),
	})

	stdout, stderr, err := te.run("plan")
	require.NoError(t, err)

	require.Empty(t, te.runner.Commands())
	require.False(t, te.fs.Exists("/workspace/build"))
	require.Contains(t, stderr, "Fetching lib")
	require.Contains(t, stdout, "▶ DEBUG (build/debug)")
	require.Contains(t, stdout, "📁 build/debug build/debug/app build/debug/lib build/debug/lib/src")
	require.Contains(t, stdout, "📦 lib [library] -Iext/lib/include")

	snaps.MatchSnapshot(t, stdout)
}

func TestPlan_JSON(t *testing.T) {
	te := newTestEnv(t, singleSource)

	stdout, _, err := te.run("plan", "--format", "json", "--target", "debug")
	require.NoError(t, err)

	var plan struct {
		BuildRoot string `json:"buildRoot"`
		Targets   []struct {
			Name     string   `json:"name"`
			Folders  []string `json:"folders"`
			Projects []struct {
				Name    string `json:"name"`
				Compile []struct {
					Command string `json:"command"`
				} `json:"compile"`
				Link *struct {
					Output string `json:"output"`
				} `json:"link"`
			} `json:"projects"`
		} `json:"targets"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &plan))

	require.Equal(t, "build", plan.BuildRoot)
	require.Len(t, plan.Targets, 1)
	require.Equal(t, "debug", plan.Targets[0].Name)
	require.Equal(t, []string{"build/debug", "build/debug/app"}, plan.Targets[0].Folders)
	project := plan.Targets[0].Projects[0]
	require.Equal(t, "gcc main.c -c -g -Werror -o build/debug/app/main.o", project.Compile[0].Command)
	require.Equal(t, "build/debug/app.exe", project.Link.Output)
}

func TestPlan_Template(t *testing.T) {
	te := newTestEnv(t, func(wb *workspace.WorkspaceBuilder) {
		singleSource(wb)
		wb.AddFile("plan.tmpl", []byte(`{{ range .Targets }}{{ .Name | title }}={{ len .Projects }} {{ end }}`))
	})

	stdout, _, err := te.run("plan", "--template", "/workspace/plan.tmpl")
	require.NoError(t, err)
	require.Equal(t, "Debug=1 Release=1 ", stdout)
}

func TestPlan_UnsupportedFormat(t *testing.T) {
	te := newTestEnv(t, singleSource)

	_, _, err := te.run("plan", "--format", "yaml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported format")
}

func TestGraph_Text(t *testing.T) {
	te := newTestEnv(t, func(wb *workspace.WorkspaceBuilder) {
		wb.SetDescriptor(`{
			"name": "app",
			"sources": "main.c",
			"depends": [
				{"name": "net", "type": "library", "path": "libs/net", "sources": "net.c", "headers": ".",
				 "depends": [{"name": "core", "type": "library", "path": "libs/core", "sources": "core.c", "headers": "."}]},
				{"name": "core"}
			]
		}`)
	})

	stdout, _, err := te.run("graph")
	require.NoError(t, err)

	require.Contains(t, stdout, "core (see above)")
	require.Contains(t, stdout, "Build order: core → net → app")

	snaps.MatchSnapshot(t, stdout)
}

func TestGraph_JSON(t *testing.T) {
	te := newTestEnv(t, withRemoteLib)
	te.git.AddRemote("https://example.com/lib.git", map[string][]byte{
		"factory.json": []byte(libDescriptor),
	})

	stdout, _, err := te.run("graph", "--format", "json")
	require.NoError(t, err)

	var output GraphOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &output))
	require.Equal(t, "app", output.Root)
	require.Equal(t, []string{"lib", "app"}, output.Order)
	require.Equal(t, "shared helpers", output.Projects[0].Description)
	require.Equal(t, []string{"math"}, output.Projects[0].Stdlib)
	require.Equal(t, []string{"lib"}, output.Projects[1].Depends)
}

func TestInit_FromFlags(t *testing.T) {
	te := newTestEnv(t, nil)

	stdout, _, err := te.run("init", "--name", "server", "--sources", "src/*.c,main.c", "--headers", "include", "--stdlib", "threads,sockets")
	require.NoError(t, err)
	require.Contains(t, stdout, "Descriptor Created")

	written, err := te.fs.ReadFile("/workspace/factory.json")
	require.NoError(t, err)
	require.True(t, strings.Contains(string(written), `"name": "server"`))
	snaps.MatchSnapshot(t, string(written))

	_, _, err = te.run("init", "--name", "again")
	require.ErrorIs(t, err, initflow.ErrDescriptorExists)
}

func TestInit_InvalidFlags(t *testing.T) {
	te := newTestEnv(t, nil)

	_, _, err := te.run("init", "--name", "x", "--type", "plugin")
	require.Error(t, err)

	_, _, err = te.run("init", "--name", "x", "--stdlib", "opengl")
	require.Error(t, err)
	require.False(t, te.fs.Exists("/workspace/factory.json"))
}

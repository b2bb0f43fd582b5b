package cli

import (
	"io"
	"os"

	"github.com/jakoblorz/go-factory/internal/filesystem"
	"github.com/jakoblorz/go-factory/internal/git"
	"github.com/jakoblorz/go-factory/internal/toolchain"
)

// Environment bundles the collaborators commands run against. Git clients
// and runners are created per run because they execute in the workspace
// root, which is only known after detection.
type Environment struct {
	FS        filesystem.FileSystem
	NewGit    func(dir string, out io.Writer) git.GitClient
	NewRunner func(dir string, stdout, stderr io.Writer) toolchain.Runner
	Getenv    func(key string) string
}

// NewOSEnvironment returns an Environment backed by the real system.
func NewOSEnvironment() *Environment {
	return &Environment{
		FS: filesystem.NewOSFileSystem(),
		NewGit: func(dir string, out io.Writer) git.GitClient {
			return git.NewOSGitClient(dir, out)
		},
		NewRunner: func(dir string, stdout, stderr io.Writer) toolchain.Runner {
			return toolchain.NewOSRunner(dir, stdout, stderr)
		},
		Getenv: os.Getenv,
	}
}

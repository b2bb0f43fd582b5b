package git

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// OSGitClient implements GitClient using real git commands
type OSGitClient struct {
	ctx context.Context
	dir string
	out io.Writer
}

// NewOSGitClient creates a new OSGitClient running git in dir.
// Progress output of git is forwarded to out when it is non-nil.
func NewOSGitClient(dir string, out io.Writer) *OSGitClient {
	return &OSGitClient{
		ctx: context.Background(),
		dir: dir,
		out: out,
	}
}

// WithContext returns a new client with the given context
func (g *OSGitClient) WithContext(ctx context.Context) GitClient {
	return &OSGitClient{
		ctx: ctx,
		dir: g.dir,
		out: g.out,
	}
}

// Clone runs git clone url dest
func (g *OSGitClient) Clone(url, dest string) error {
	cmd := exec.CommandContext(g.ctx, "git", "clone", url, dest)
	cmd.Dir = g.dir

	var stderr bytes.Buffer
	if g.out != nil {
		cmd.Stdout = g.out
		cmd.Stderr = io.MultiWriter(g.out, &stderr)
	} else {
		cmd.Stderr = &stderr
	}

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg != "" {
			return fmt.Errorf("failed to clone %s: %w: %s", url, err, errMsg)
		}
		return fmt.Errorf("failed to clone %s: %w", url, err)
	}

	return nil
}

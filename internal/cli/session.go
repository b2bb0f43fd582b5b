package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/jakoblorz/go-factory/internal/resolver"
	"github.com/jakoblorz/go-factory/internal/workspace"
	"github.com/spf13/cobra"
)

// loadWorkspace detects the workspace and resolves every dependency of its
// root descriptor, fetching what is missing.
func loadWorkspace(cmd *cobra.Command, env *Environment, progress io.Writer) (*workspace.Workspace, error) {
	ws := workspace.New(env.FS, workspaceOptionsFromCmd(cmd)...)
	if err := ws.Detect(); err != nil {
		return nil, fmt.Errorf("failed to detect workspace: %w", err)
	}

	extRoot, _ := cmd.Flags().GetString(extRootFlag)
	r := resolver.New(ws.FileSystem(), env.NewGit(ws.RootPath, progress), ws.Parser(), extRoot, progress)
	if err := r.Resolve(commandContext(cmd), ws.Root); err != nil {
		return nil, err
	}

	return ws, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

package cli

import (
	"github.com/jakoblorz/go-factory/internal/build"
	"github.com/jakoblorz/go-factory/internal/compiler"
	"github.com/jakoblorz/go-factory/internal/descriptor"
	"github.com/jakoblorz/go-factory/internal/resolver"
	"github.com/jakoblorz/go-factory/internal/workspace"
	"github.com/spf13/cobra"
)

const (
	fileFlag      = "file"
	buildRootFlag = "build-root"
	extRootFlag   = "ext-root"
	ccFlag        = "cc"
	targetFlag    = "target"
	verboseFlag   = "verbose"

	ccEnv = "FACTORY_CC"
)

func addPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringP(fileFlag, "f", descriptor.FileName, "Root descriptor; a bare name is searched for in parent directories")
	flags.String(buildRootFlag, build.DefaultBuildRoot, "Output directory for objects and executables")
	flags.String(extRootFlag, resolver.DefaultExtRoot, "Directory fetched dependencies are cloned into")
	flags.String(ccFlag, "", "Compiler driver (default $"+ccEnv+" or "+compiler.DefaultCC+")")
	flags.StringSlice(targetFlag, nil, "Targets to build: debug, release (default both)")
	flags.BoolP(verboseFlag, "v", false, "Print every command before it runs")
}

func workspaceOptionsFromCmd(cmd *cobra.Command) []workspace.Option {
	file, _ := cmd.Flags().GetString(fileFlag)
	return []workspace.Option{workspace.WithDescriptorFile(file)}
}

func targetsFromCmd(cmd *cobra.Command) []string {
	targets, _ := cmd.Flags().GetStringSlice(targetFlag)
	if len(targets) == 0 {
		return compiler.DefaultTargets
	}
	return targets
}

func hostFromCmd(cmd *cobra.Command, env *Environment) compiler.Host {
	cc, _ := cmd.Flags().GetString(ccFlag)
	if cc == "" && env.Getenv != nil {
		cc = env.Getenv(ccEnv)
	}
	return compiler.DefaultHost().WithCC(cc)
}

func buildOptionsFromCmd(cmd *cobra.Command, env *Environment) build.Options {
	buildRoot, _ := cmd.Flags().GetString(buildRootFlag)
	verbose, _ := cmd.Flags().GetBool(verboseFlag)
	return build.Options{
		BuildRoot: buildRoot,
		Host:      hostFromCmd(cmd, env),
		Verbose:   verbose,
	}
}

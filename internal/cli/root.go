package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand(env *Environment) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "factory",
		Short: "Build multi-project C workspaces",
		Long: `A build orchestrator for C projects described by factory.json.

factory resolves the dependency graph of the root descriptor, fetches
dependencies that are not available locally, and compiles and links every
project in dependency order for the debug and release targets.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to `factory build` when no subcommand is provided.
			return (&BuildCommand{env: env}).Run(cmd, args)
		},
	}

	addPersistentFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(NewBuildCommand(env))
	rootCmd.AddCommand(NewPlanCommand(env))
	rootCmd.AddCommand(NewGraphCommand(env))
	rootCmd.AddCommand(NewInitCommand(env))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand(NewOSEnvironment())

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

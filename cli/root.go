// Package cli wires configuration, logging and the store into the server
// and maintenance commands.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the thoughtcatcher command tree. Running the root
// command with no subcommand starts the server.
func NewRootCommand() *cobra.Command {
	serve := NewServeCommand()

	cmd := &cobra.Command{
		Use:          "thoughtcatcher",
		Short:        "ThoughtCatcher mind map API",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	cmd.Flags().AddFlagSet(serve.Flags())

	cmd.AddCommand(serve)
	cmd.AddCommand(NewMigrateCommand())
	cmd.AddCommand(NewSeedCommand())
	return cmd
}

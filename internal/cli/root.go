// Package cli implements the targetorder command tree. Each mutating command
// loads the project snapshot, runs one engine operation and saves the
// snapshot again if the engine reported a change.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// options holds the persistent flags shared by every command.
type options struct {
	dir      string
	project  string
	logLevel string
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "targetorder",
		Short: "Reorder and group the sprite layers of a project",
		Long: `targetorder maintains the layer order of a project's sprites and stage,
including sprite groups: creating, joining, leaving, merging and moving
them the way the editor's drag-and-drop does.

The project is a yaml snapshot (project.yaml by default). Settings live in
.targetorder/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("targetorder version {{.Version}}\n")

	cmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "project base directory")
	cmd.PersistentFlags().StringVarP(&opts.project, "project", "p", "", "project snapshot file (default from config)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newInitCmd(opts),
		newAddCmd(opts),
		newShowCmd(opts),
		newCheckCmd(opts),
		newMoveCmd(opts),
		newSwapCmd(opts),
		newDropCmd(opts),
		newGroupCmd(opts),
		newHistoryCmd(opts),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

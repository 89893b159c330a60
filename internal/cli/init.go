package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thruflo/targetorder/internal/config"
	"github.com/thruflo/targetorder/internal/project"
	"github.com/thruflo/targetorder/internal/sequence"
)

func newInitCmd(opts *options) *cobra.Command {
	var force bool
	var stageID string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a config file and an empty project",
		Long: `Creates .targetorder/config.yaml with default settings and a project
snapshot holding only the stage.

Existing files are left alone unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts, stageID, force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing files")
	cmd.Flags().StringVar(&stageID, "stage-id", "stage", "id of the stage target")
	return cmd
}

func runInit(cmd *cobra.Command, opts *options, stageID string, force bool) error {
	base, _, path, err := resolvePaths(opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if _, err := os.Stat(config.Path(base)); err != nil || force {
		cfg := config.DefaultConfig()
		if err := config.WriteConfig(base, &cfg); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", config.Path(base))
	}

	store := project.NewStore(path)
	if store.Exists() && !force {
		return fmt.Errorf("project %s already exists (use --force to overwrite)", path)
	}
	if err := store.Save(sequence.New(sequence.NewStage(stageID))); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}

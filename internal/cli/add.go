package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thruflo/targetorder/internal/project"
	"github.com/thruflo/targetorder/internal/sequence"
)

func newAddCmd(opts *options) *cobra.Command {
	var name string
	var stage bool

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Install a sprite (or the stage) at the end of the layer order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}

			t := sequence.NewSprite(args[0], name)
			if stage {
				t = sequence.NewStage(args[0])
			}
			if err := project.Add(w.seq, t); err != nil {
				return err
			}
			w.dirty = true
			if err := w.save(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s at position %d\n", t.ID, w.seq.Len()-1)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "sprite display name")
	cmd.Flags().BoolVar(&stage, "stage", false, "add the stage instead of a sprite")
	return cmd
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/thruflo/targetorder/internal/reorder"
)

func newMoveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <position>",
		Short: "Move an ungrouped sprite to an absolute position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[1], err)
			}
			w, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			err = w.apply(func(e *reorder.Engine) error {
				return e.MoveUngrouped(args[0], pos)
			}, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to position %d\n", args[0], pos)
			return nil
		},
	}
}

func newSwapCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "swap <id> <id>",
		Short: "Exchange the layer slots of two sprites",
		Long: `Exchanges the slots of two sprites. A grouped sprite that moves out of
its group's run leaves the group; if it was the leader, the next member
takes over.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			err = w.apply(func(e *reorder.Engine) error {
				return e.SwapPositions(args[0], args[1])
			}, args...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Swapped %s and %s\n", args[0], args[1])
			return nil
		},
	}
}

func newDropCmd(opts *options) *cobra.Command {
	var into, whole bool

	cmd := &cobra.Command{
		Use:   "drop <source> <target>",
		Short: "Apply a drag-and-drop gesture",
		Long: `Drops source on target the way the sprite list does:

  --group   source is a whole group and the two runs are merged
  --into    source joins target's group, right after target
  (neither) ungrouped sprites are reordered, otherwise the slots are swapped`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := reorder.DropRequest{Source: args[0], Target: args[1], WholeGroup: whole}
			if into {
				req.Mode = reorder.DropInto
			}

			w, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			err = w.apply(func(e *reorder.Engine) error {
				return e.Drop(req)
			}, args...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dropped %s on %s\n", args[0], args[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&into, "into", false, "drop into the target's group")
	cmd.Flags().BoolVar(&whole, "group", false, "drag the source as a whole group")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thruflo/targetorder/internal/group"
	"github.com/thruflo/targetorder/internal/reorder"
)

func newGroupCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Create, join and rearrange sprite groups",
	}
	cmd.AddCommand(
		newGroupCreateCmd(opts),
		newGroupJoinCmd(opts),
		newGroupLeaveCmd(opts),
		newGroupDissolveCmd(opts),
		newGroupMergeCmd(opts),
		newGroupEdgeCmd(opts),
		newGroupRenameCmd(opts),
		newGroupOpenCmd(opts, "open", true),
		newGroupOpenCmd(opts, "close", false),
		newGroupEditCmd(opts),
	)
	return cmd
}

// engineCmd builds a command whose whole job is one engine operation
// followed by a confirmation line.
func engineCmd(opts *options, use, short string, nargs int, op func(e *reorder.Engine, args []string) error, done func(args []string) string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			err = w.apply(func(e *reorder.Engine) error {
				return op(e, args)
			}, args...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), done(args))
			return nil
		},
	}
}

func newGroupCreateCmd(opts *options) *cobra.Command {
	var order int

	cmd := &cobra.Command{
		Use:   "create <sprite>",
		Short: "Make an ungrouped sprite the leader of a new group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			n := order
			if n <= 0 {
				n = len(w.seq.GroupIDs()) + 1
			}
			err = w.apply(func(e *reorder.Engine) error {
				return e.CreateGroup(args[0], n)
			}, args[0])
			if err != nil {
				return err
			}
			gid := group.IDFor(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Created group %s (%s)\n", gid, w.seq.Get(args[0]).Group().GroupName)
			return nil
		},
	}
	cmd.Flags().IntVar(&order, "order", 0, "ordinal used in the default group name (default: next free)")
	return cmd
}

func newGroupJoinCmd(opts *options) *cobra.Command {
	return engineCmd(opts, "join <sprite> <after>",
		"Add a sprite to the group of another, directly after it", 2,
		func(e *reorder.Engine, args []string) error { return e.JoinGroup(args[0], args[1]) },
		func(args []string) string { return fmt.Sprintf("%s joined after %s", args[0], args[1]) })
}

func newGroupLeaveCmd(opts *options) *cobra.Command {
	return engineCmd(opts, "leave <sprite>",
		"Remove a sprite from its group", 1,
		func(e *reorder.Engine, args []string) error { return e.LeaveGroup(args[0]) },
		func(args []string) string { return fmt.Sprintf("%s left its group", args[0]) })
}

func newGroupDissolveCmd(opts *options) *cobra.Command {
	return engineCmd(opts, "dissolve <group>",
		"Ungroup every member of a group in place", 1,
		func(e *reorder.Engine, args []string) error { return e.DissolveGroup(args[0]) },
		func(args []string) string { return fmt.Sprintf("Dissolved %s", args[0]) })
}

func newGroupMergeCmd(opts *options) *cobra.Command {
	return engineCmd(opts, "merge <dropped> <dragged>",
		"Exchange the layer runs of two groups", 2,
		func(e *reorder.Engine, args []string) error { return e.MergeGroups(args[0], args[1]) },
		func(args []string) string { return fmt.Sprintf("Exchanged %s and %s", args[0], args[1]) })
}

func newGroupEdgeCmd(opts *options) *cobra.Command {
	return engineCmd(opts, "edge <group> <start|end>",
		"Move a whole group to the back or front of the layer order", 2,
		func(e *reorder.Engine, args []string) error {
			edge, err := reorder.ParseEdge(args[1])
			if err != nil {
				return err
			}
			return e.MoveGroupToEdge(args[0], edge)
		},
		func(args []string) string { return fmt.Sprintf("Moved %s to the %s", args[0], args[1]) })
}

func newGroupRenameCmd(opts *options) *cobra.Command {
	return engineCmd(opts, "rename <group> <name>",
		"Set the display name of a group", 2,
		func(e *reorder.Engine, args []string) error { return e.RenameGroup(args[0], args[1]) },
		func(args []string) string { return fmt.Sprintf("Renamed %s to %q", args[0], args[1]) })
}

func newGroupOpenCmd(opts *options, use string, open bool) *cobra.Command {
	short, state := "Mark a group as expanded in the sprite list", "open"
	if !open {
		short, state = "Mark a group as collapsed in the sprite list", "closed"
	}
	return engineCmd(opts, use+" <group>", short, 1,
		func(e *reorder.Engine, args []string) error { return e.SetGroupOpen(args[0], open) },
		func(args []string) string { return fmt.Sprintf("%s is now %s", args[0], state) })
}

func newGroupEditCmd(opts *options) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "edit <group>",
		Short: "Toggle the editing flag of a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			if err := w.apply(func(e *reorder.Engine) error {
				return e.SetGroupEdit(args[0], !off)
			}, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s editing=%t\n", args[0], !off)
			return nil
		},
	}
	cmd.Flags().BoolVar(&off, "off", false, "clear the flag instead of setting it")
	return cmd
}

package reorder

import (
	"fmt"

	"github.com/thruflo/targetorder/internal/group"
	"github.com/thruflo/targetorder/internal/sequence"
)

// Edge names an end of the sequence for MoveGroupToEdge.
type Edge int

const (
	// EdgeStart is the first slot after any leading stage targets.
	EdgeStart Edge = iota
	// EdgeEnd is the last slot.
	EdgeEnd
)

// String returns the edge name used by the CLI.
func (e Edge) String() string {
	if e == EdgeEnd {
		return "end"
	}
	return "start"
}

// ParseEdge converts "start"/"front" or "end"/"back" to an Edge.
func ParseEdge(s string) (Edge, error) {
	switch s {
	case "start", "front":
		return EdgeStart, nil
	case "end", "back":
		return EdgeEnd, nil
	}
	return EdgeStart, fmt.Errorf("unknown edge %q (want start or end)", s)
}

// LeaveGroup takes a sprite out of its group and places it right after the
// group's remaining run.
func (e *Engine) LeaveGroup(id string) error {
	return e.run("leave-group", func(tx *txn) error {
		t, err := tx.sprite(id)
		if err != nil {
			return err
		}
		d := t.Group()
		if !group.IsGrouped(d) {
			return fmt.Errorf("target %q is not grouped: %w", id, ErrInvalidMove)
		}

		var last *sequence.Target
		for _, m := range tx.targetsAt(tx.seq.Members(d.GroupID)) {
			if m != t {
				last = m
			}
		}

		if err := tx.detach(t); err != nil {
			return err
		}
		if last == nil {
			return nil
		}

		if _, err := tx.seq.RemoveAt(tx.position(t)); err != nil {
			return err
		}
		return tx.seq.InsertAt(tx.position(last)+1, t)
	})
}

// DissolveGroup clears the descriptor of every member of groupID. Positions
// are unchanged.
func (e *Engine) DissolveGroup(groupID string) error {
	return e.run("dissolve-group", func(tx *txn) error {
		members, err := tx.members(groupID)
		if err != nil {
			return err
		}
		for _, m := range members {
			m.SetGroup(nil)
		}
		tx.log.Debug("group dissolved", "group", groupID, "members", len(members))
		return nil
	})
}

// MoveGroupToEdge moves a whole run to one end of the sequence. ref is
// resolved as in MergeGroups.
func (e *Engine) MoveGroupToEdge(ref string, edge Edge) error {
	return e.run("move-to-edge", func(tx *txn) error {
		positions, err := tx.seq.Run(ref)
		if err != nil {
			return err
		}
		run := tx.targetsAt(positions)

		for i := len(run) - 1; i >= 0; i-- {
			if _, err := tx.seq.RemoveAt(tx.position(run[i])); err != nil {
				return err
			}
		}

		at := tx.seq.Len()
		if edge == EdgeStart {
			at = 0
			for at < tx.seq.Len() && tx.seq.At(at).IsStage {
				at++
			}
		}
		for i, t := range run {
			if err := tx.seq.InsertAt(at+i, t); err != nil {
				return err
			}
		}
		return nil
	})
}

// RenameGroup sets the display name on every member of groupID.
func (e *Engine) RenameGroup(groupID, name string) error {
	return e.updateGroup("rename-group", groupID, func(d *group.Descriptor) {
		d.GroupName = name
	})
}

// SetGroupOpen sets the expand state of groupID.
func (e *Engine) SetGroupOpen(groupID string, open bool) error {
	return e.updateGroup("set-group-open", groupID, func(d *group.Descriptor) {
		d.IsOpen = open
	})
}

// SetGroupEdit sets the edit-mode flag of groupID.
func (e *Engine) SetGroupEdit(groupID string, edit bool) error {
	return e.updateGroup("set-group-edit", groupID, func(d *group.Descriptor) {
		d.IsEdit = edit
	})
}

func (e *Engine) updateGroup(op, groupID string, fn func(d *group.Descriptor)) error {
	return e.run(op, func(tx *txn) error {
		members, err := tx.members(groupID)
		if err != nil {
			return err
		}
		for _, m := range members {
			fn(m.Group())
		}
		return nil
	})
}

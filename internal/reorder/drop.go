package reorder

import (
	"fmt"

	"github.com/thruflo/targetorder/internal/group"
	"github.com/thruflo/targetorder/internal/sequence"
)

// DropMode says where a dragged item was released relative to the target.
type DropMode int

const (
	// DropOnto releases the item on the target's slot.
	DropOnto DropMode = iota
	// DropInto releases the item into the target's group.
	DropInto
)

// DropRequest describes a drag-and-drop gesture in the sprite list.
type DropRequest struct {
	// Source is the dragged sprite, or the dragged group's id when
	// WholeGroup is set.
	Source string
	// Target is the sprite or group the item was released on.
	Target string
	// WholeGroup is set when a collapsed group was dragged as one item.
	WholeGroup bool
	Mode       DropMode
}

// Drop applies the primitive that matches req:
//   - a whole group dragged anywhere merges the two runs
//   - a sprite dropped into a target joins the target's group
//   - two ungrouped sprites are reordered with MoveUngrouped
//   - anything else swaps the two slots
func (e *Engine) Drop(req DropRequest) error {
	switch {
	case req.WholeGroup:
		return e.MergeGroups(req.Target, req.Source)
	case req.Mode == DropInto:
		return e.JoinGroup(req.Source, req.Target)
	}

	live := sequence.New(e.rt.Targets()...)
	src, dst := live.Get(req.Source), live.Get(req.Target)
	if src == nil {
		return fmt.Errorf("drop: target %q: %w", req.Source, sequence.ErrNotFound)
	}
	if dst == nil {
		return fmt.Errorf("drop: target %q: %w", req.Target, sequence.ErrNotFound)
	}

	if !group.IsGrouped(src.Group()) && !group.IsGrouped(dst.Group()) {
		pos, _ := live.PositionOf(dst.ID)
		return e.MoveUngrouped(src.ID, pos)
	}
	return e.SwapPositions(src.ID, dst.ID)
}

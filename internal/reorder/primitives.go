package reorder

import (
	"fmt"

	"github.com/thruflo/targetorder/internal/group"
	"github.com/thruflo/targetorder/internal/sequence"
)

// CreateGroup makes spriteID the leader of a new one-member group. order is
// the group's ordinal and only feeds its default display name.
func (e *Engine) CreateGroup(spriteID string, order int) error {
	return e.run("create-group", func(tx *txn) error {
		t, err := tx.sprite(spriteID)
		if err != nil {
			return err
		}
		if t.Group() != nil {
			return fmt.Errorf("target %q: %w", spriteID, group.ErrAlreadyGrouped)
		}
		if err := tx.notClone(t); err != nil {
			return err
		}
		t.SetGroup(group.New(t.ID, e.groupName(order)))
		return nil
	})
}

// MoveUngrouped relocates an ungrouped sprite so it ends up at position.
func (e *Engine) MoveUngrouped(sourceID string, position int) error {
	return e.run("move", func(tx *txn) error {
		t, err := tx.sprite(sourceID)
		if err != nil {
			return err
		}
		if group.IsGrouped(t.Group()) {
			return fmt.Errorf("target %q is grouped: %w", sourceID, ErrInvalidMove)
		}
		if position < 0 || position >= tx.seq.Len() {
			return fmt.Errorf("move %q to %d of %d: %w", sourceID, position, tx.seq.Len(), sequence.ErrOutOfRange)
		}

		if err := tx.move(t, position); err != nil {
			return err
		}
		if tx.splitsRun(position) {
			return fmt.Errorf("position %d is inside a group: %w", position, ErrInvalidMove)
		}
		return nil
	})
}

// SwapPositions exchanges the slots of two sprites.
//
// Two members of the same group also exchange ranks, and the group id
// follows whichever of them ends up ranked 0. Otherwise each endpoint that
// belongs to a group with other members leaves it as it moves out of the
// group's run, handing leadership to the next member if it was the leader.
// A one-member group is its whole run, so it moves with its descriptor.
func (e *Engine) SwapPositions(idA, idB string) error {
	return e.run("swap", func(tx *txn) error {
		a, err := tx.sprite(idA)
		if err != nil {
			return err
		}
		b, err := tx.sprite(idB)
		if err != nil {
			return err
		}
		if a == b {
			return fmt.Errorf("swap %q with itself: %w", idA, ErrInvalidMove)
		}
		pa, pb := tx.position(a), tx.position(b)

		if da, db := a.Group(), b.Group(); group.SameGroup(da, db) {
			gid := da.GroupID
			da.IndexInGroup, db.IndexInGroup = db.IndexInGroup, da.IndexInGroup
			if err := tx.seq.Swap(pa, pb); err != nil {
				return err
			}
			if group.IsLeader(da) || group.IsLeader(db) {
				newID, ok := group.Relead(tx.seq.GroupMembers(gid))
				if !ok {
					return sequence.InvariantError{
						Rule:    "leader",
						Message: fmt.Sprintf("group %q lost its leader", gid),
					}
				}
				tx.log.Debug("leadership transferred", "from", gid, "to", newID)
			}
			return nil
		}

		for _, t := range []*sequence.Target{a, b} {
			if d := t.Group(); group.IsGrouped(d) && len(tx.seq.Members(d.GroupID)) == 1 {
				continue
			}
			if err := tx.detach(t); err != nil {
				return err
			}
		}
		if err := tx.seq.Swap(pa, pb); err != nil {
			return err
		}
		for _, pos := range []int{pa, pb} {
			if tx.splitsRun(pos) {
				return fmt.Errorf("%q would land inside a group: %w", tx.seq.At(pos).ID, ErrInvalidMove)
			}
		}
		return nil
	})
}

// JoinGroup moves draggedID out of its current group, if any, and inserts
// it immediately after afterTargetID as the next member of that target's
// group. If afterTargetID is ungrouped it becomes the leader of a new group.
//
// The rank passes run in a fixed order: close the gap in the source group,
// reassign source leadership, then open a gap in the destination group.
func (e *Engine) JoinGroup(draggedID, afterTargetID string) error {
	return e.run("join-group", func(tx *txn) error {
		dragged, err := tx.sprite(draggedID)
		if err != nil {
			return err
		}
		after, err := tx.sprite(afterTargetID)
		if err != nil {
			return err
		}
		if dragged == after {
			return fmt.Errorf("join %q to itself: %w", draggedID, ErrInvalidMove)
		}
		if err := tx.notClone(dragged); err != nil {
			return err
		}
		if err := tx.notClone(after); err != nil {
			return err
		}

		if err := tx.detach(dragged); err != nil {
			return err
		}

		// Read after detach: leadership may have moved onto after.
		dest := after.Group()
		if !group.IsGrouped(dest) {
			dest = group.New(after.ID, e.groupName(len(tx.seq.GroupIDs())+1))
			after.SetGroup(dest)
			tx.log.Debug("group formed", "group", dest.GroupID)
		}

		rank := dest.IndexInGroup + 1
		group.OpenGap(tx.seq.GroupMembers(dest.GroupID), rank)

		if _, err := tx.seq.RemoveAt(tx.position(dragged)); err != nil {
			return err
		}
		if err := tx.seq.InsertAt(tx.position(after)+1, dragged); err != nil {
			return err
		}
		dragged.SetGroup(dest.Join(rank))
		return nil
	})
}

// MergeGroups swaps two runs position for position. Each ref is a group id
// or the id of a sprite; an ungrouped sprite is a run of one and a grouped
// sprite stands for its whole group.
//
// The shorter run is first padded at its tail with placeholders up to the
// longer run's length, so the longer run's surplus members move into the
// slots the shorter run vacates. The placeholders are then spliced out.
// Group membership is unchanged.
func (e *Engine) MergeGroups(droppedGroupRef, draggedGroupRef string) error {
	return e.run("merge-groups", func(tx *txn) error {
		dropPos, err := tx.seq.Run(droppedGroupRef)
		if err != nil {
			return err
		}
		dragPos, err := tx.seq.Run(draggedGroupRef)
		if err != nil {
			return err
		}
		if dropPos[0] == dragPos[0] {
			return fmt.Errorf("merge %q with itself: %w", droppedGroupRef, ErrInvalidMove)
		}

		drop, drag := tx.targetsAt(dropPos), tx.targetsAt(dragPos)
		n := max(len(drop), len(drag))

		if len(drop) < n {
			pads, err := tx.pad(tx.position(drop[len(drop)-1])+1, n-len(drop))
			if err != nil {
				return err
			}
			drop = append(drop, pads...)
		}
		if len(drag) < n {
			pads, err := tx.pad(tx.position(drag[len(drag)-1])+1, n-len(drag))
			if err != nil {
				return err
			}
			drag = append(drag, pads...)
		}
		tx.log.Debug("runs padded", "len", n, "placeholders", tx.pads)

		// Resolve every slot before swapping so each swap works on fixed
		// positions.
		from, to := make([]int, n), make([]int, n)
		for i := 0; i < n; i++ {
			from[i], to[i] = tx.position(drop[i]), tx.position(drag[i])
		}
		for i := 0; i < n; i++ {
			if err := tx.seq.Swap(from[i], to[i]); err != nil {
				return err
			}
		}

		tx.seq.RemovePlaceholders()
		return nil
	})
}

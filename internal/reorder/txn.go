package reorder

import (
	"fmt"

	"github.com/thruflo/targetorder/internal/group"
	"github.com/thruflo/targetorder/internal/logging"
	"github.com/thruflo/targetorder/internal/sequence"
)

// txn is the private working state of one operation.
type txn struct {
	seq  *sequence.Sequence
	log  *logging.Logger
	pads int
}

// sprite resolves id to a non-stage target of the working sequence.
func (tx *txn) sprite(id string) (*sequence.Target, error) {
	t := tx.seq.Get(id)
	if t == nil {
		return nil, fmt.Errorf("target %q: %w", id, sequence.ErrNotFound)
	}
	if t.IsStage {
		return nil, fmt.Errorf("target %q: %w", id, sequence.ErrNotASprite)
	}
	return t, nil
}

// position returns the working position of t.
func (tx *txn) position(t *sequence.Target) int {
	pos, _ := tx.seq.PositionOf(t.ID)
	return pos
}

// detach takes t out of its group without moving it. The survivors' ranks
// close over the gap, and if t led the group the survivor now ranked 0
// takes over the group id.
func (tx *txn) detach(t *sequence.Target) error {
	d := t.Group()
	if !group.IsGrouped(d) {
		return nil
	}
	gid, rank := d.GroupID, d.IndexInGroup
	t.SetGroup(nil)

	rest := tx.seq.GroupMembers(gid)
	group.CloseGap(rest, rank)

	if rank == 0 && len(rest) > 0 {
		newID, ok := group.Relead(rest)
		if !ok {
			return sequence.InvariantError{
				Rule:    "leader",
				Message: fmt.Sprintf("group %q has no unique successor for %q", gid, t.ID),
			}
		}
		tx.log.Debug("leadership transferred", "from", gid, "to", newID)
	}
	tx.log.Debug("detached from group", "target", t.ID, "group", gid, "rank", rank)
	return nil
}

// splitsRun reports whether the target at pos sits between two members of
// a group it does not belong to.
func (tx *txn) splitsRun(pos int) bool {
	t := tx.seq.At(pos)
	prev, next := tx.seq.At(pos-1), tx.seq.At(pos+1)
	if t == nil || prev == nil || next == nil {
		return false
	}
	if group.SameGroup(t.Group(), prev.Group()) {
		return false
	}
	return group.SameGroup(prev.Group(), next.Group())
}

// notClone rejects targets that share their sprite with another target.
// Clones follow their sprite and cannot be grouped on their own.
func (tx *txn) notClone(t *sequence.Target) error {
	if tx.seq.SharesSprite(t.ID) {
		return fmt.Errorf("target %q is a clone: %w", t.ID, ErrInvalidMove)
	}
	return nil
}

// move relocates t so that it ends up at pos.
func (tx *txn) move(t *sequence.Target, pos int) error {
	if _, err := tx.seq.RemoveAt(tx.position(t)); err != nil {
		return err
	}
	return tx.seq.InsertAt(pos, t)
}

// pad inserts n placeholders at pos and returns them.
func (tx *txn) pad(pos, n int) ([]*sequence.Target, error) {
	out := make([]*sequence.Target, 0, n)
	for i := 0; i < n; i++ {
		p := sequence.NewPlaceholder(tx.pads)
		tx.pads++
		if err := tx.seq.InsertAt(pos+i, p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// targetsAt returns the working targets at the given positions.
func (tx *txn) targetsAt(positions []int) []*sequence.Target {
	out := make([]*sequence.Target, len(positions))
	for i, pos := range positions {
		out[i] = tx.seq.At(pos)
	}
	return out
}

// members returns the run of a group id, failing if the group is empty.
func (tx *txn) members(groupID string) ([]*sequence.Target, error) {
	positions := tx.seq.Members(groupID)
	if len(positions) == 0 {
		return nil, fmt.Errorf("group %q: %w", groupID, sequence.ErrNotFound)
	}
	return tx.targetsAt(positions), nil
}

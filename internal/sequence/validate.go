package sequence

import (
	"fmt"
	"sort"

	"github.com/thruflo/targetorder/internal/group"
)

// Validate checks the consistency rules every committed sequence must obey:
//   - ids are non-empty and unique, and no placeholder remains
//   - the stage carries no sprite and every other target has one
//   - clones may share a sprite only while it is ungrouped
//   - ranks within a group are exactly 0..n-1
//   - the rank 0 member owns the group id
//   - members of a group sit in one contiguous run, ascending by rank
func (s *Sequence) Validate() error {
	seen := make(map[string]bool, len(s.targets))
	sprites := make(map[*Sprite]string, len(s.targets))
	groups := make(map[string][]int)
	var order []string

	for i, t := range s.targets {
		if t == nil {
			return InvariantError{Rule: "target", Message: fmt.Sprintf("nil target at position %d", i)}
		}
		if t.ID == "" {
			return InvariantError{Rule: "target", Message: fmt.Sprintf("empty id at position %d", i)}
		}
		if t.IsPlaceholder() {
			return InvariantError{Rule: "placeholder", Message: fmt.Sprintf("placeholder left at position %d", i)}
		}
		if seen[t.ID] {
			return InvariantError{Rule: "unique-id", Message: fmt.Sprintf("duplicate id %q", t.ID)}
		}
		seen[t.ID] = true

		if t.IsStage {
			if t.Sprite != nil {
				return InvariantError{Rule: "stage", Message: fmt.Sprintf("stage %q owns a sprite", t.ID)}
			}
			continue
		}
		if t.Sprite == nil {
			return InvariantError{Rule: "sprite", Message: fmt.Sprintf("target %q has no sprite", t.ID)}
		}
		if other, ok := sprites[t.Sprite]; ok {
			if group.IsGrouped(t.Group()) {
				return InvariantError{Rule: "sprite", Message: fmt.Sprintf("targets %q and %q share a grouped sprite", other, t.ID)}
			}
			continue
		}
		sprites[t.Sprite] = t.ID

		if d := t.Group(); group.IsGrouped(d) {
			if _, ok := groups[d.GroupID]; !ok {
				order = append(order, d.GroupID)
			}
			groups[d.GroupID] = append(groups[d.GroupID], i)
		}
	}

	for _, gid := range order {
		if err := s.validateGroup(gid, groups[gid]); err != nil {
			return err
		}
	}
	return nil
}

// validateGroup checks one group given its member positions in sequence order.
func (s *Sequence) validateGroup(gid string, positions []int) error {
	byRank := make([]int, len(positions))
	copy(byRank, positions)
	sort.SliceStable(byRank, func(a, b int) bool {
		return s.targets[byRank[a]].Group().IndexInGroup < s.targets[byRank[b]].Group().IndexInGroup
	})

	for rank, pos := range byRank {
		t := s.targets[pos]
		if got := t.Group().IndexInGroup; got != rank {
			return InvariantError{
				Rule:    "rank",
				Message: fmt.Sprintf("group %q: %q has rank %d, want %d", gid, t.ID, got, rank),
			}
		}
	}

	leader := s.targets[byRank[0]]
	if group.IDFor(leader.ID) != gid {
		return InvariantError{
			Rule:    "leader",
			Message: fmt.Sprintf("group %q is led by %q", gid, leader.ID),
		}
	}

	for i, pos := range byRank {
		if pos != byRank[0]+i {
			return InvariantError{
				Rule:    "contiguity",
				Message: fmt.Sprintf("group %q: rank %d at position %d, want %d", gid, i, pos, byRank[0]+i),
			}
		}
	}
	return nil
}

// Package sequence holds the layer order of all targets in a project.
//
// A Sequence is an ordered list of targets with an id to position index that
// is rebuilt after every structural change, so lookups by id are O(1) and
// never observe stale positions. Position 0 is the back-most layer.
//
// Sequence also serves as a minimal in-memory runtime: it can hand out and
// accept the full target list, which is what the reordering engine commits
// against.
package sequence

import (
	"fmt"
	"sort"

	"github.com/thruflo/targetorder/internal/group"
)

// Sequence is an ordered list of targets indexed by id.
type Sequence struct {
	targets []*Target
	index   map[string]int
}

// New returns a sequence holding targets in the given order.
func New(targets ...*Target) *Sequence {
	s := &Sequence{}
	s.SetTargets(targets)
	return s
}

// reindex rebuilds the id to position index.
func (s *Sequence) reindex() {
	s.index = make(map[string]int, len(s.targets))
	for i, t := range s.targets {
		s.index[t.ID] = i
	}
}

// Len returns the number of targets.
func (s *Sequence) Len() int {
	return len(s.targets)
}

// At returns the target at pos, or nil if pos is out of range.
func (s *Sequence) At(pos int) *Target {
	if pos < 0 || pos >= len(s.targets) {
		return nil
	}
	return s.targets[pos]
}

// Get returns the target with the given id, or nil.
func (s *Sequence) Get(id string) *Target {
	pos, ok := s.index[id]
	if !ok {
		return nil
	}
	return s.targets[pos]
}

// TargetByID returns the target with the given id, or nil.
func (s *Sequence) TargetByID(id string) *Target {
	return s.Get(id)
}

// PositionOf returns the position of the target with the given id.
func (s *Sequence) PositionOf(id string) (int, bool) {
	pos, ok := s.index[id]
	return pos, ok
}

// Targets returns a copy of the ordered target list.
func (s *Sequence) Targets() []*Target {
	out := make([]*Target, len(s.targets))
	copy(out, s.targets)
	return out
}

// SetTargets replaces the whole ordered list.
func (s *Sequence) SetTargets(targets []*Target) {
	s.targets = make([]*Target, len(targets))
	copy(s.targets, targets)
	s.reindex()
}

// IDs returns the target ids in order.
func (s *Sequence) IDs() []string {
	out := make([]string, len(s.targets))
	for i, t := range s.targets {
		out[i] = t.ID
	}
	return out
}

// RemoveAt removes and returns the target at pos.
func (s *Sequence) RemoveAt(pos int) (*Target, error) {
	if pos < 0 || pos >= len(s.targets) {
		return nil, fmt.Errorf("remove at %d of %d: %w", pos, len(s.targets), ErrOutOfRange)
	}
	t := s.targets[pos]
	s.targets = append(s.targets[:pos], s.targets[pos+1:]...)
	s.reindex()
	return t, nil
}

// InsertAt inserts t so that it ends up at pos. pos may equal Len to append.
func (s *Sequence) InsertAt(pos int, t *Target) error {
	if pos < 0 || pos > len(s.targets) {
		return fmt.Errorf("insert at %d of %d: %w", pos, len(s.targets), ErrOutOfRange)
	}
	s.targets = append(s.targets, nil)
	copy(s.targets[pos+1:], s.targets[pos:])
	s.targets[pos] = t
	s.reindex()
	return nil
}

// Swap exchanges the targets at positions a and b.
func (s *Sequence) Swap(a, b int) error {
	if a < 0 || a >= len(s.targets) || b < 0 || b >= len(s.targets) {
		return fmt.Errorf("swap %d and %d of %d: %w", a, b, len(s.targets), ErrOutOfRange)
	}
	s.targets[a], s.targets[b] = s.targets[b], s.targets[a]
	s.index[s.targets[a].ID] = a
	s.index[s.targets[b].ID] = b
	return nil
}

// RemovePlaceholders splices out every padding target.
func (s *Sequence) RemovePlaceholders() int {
	kept := s.targets[:0]
	removed := 0
	for _, t := range s.targets {
		if t.IsPlaceholder() {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	for i := len(kept); i < len(s.targets); i++ {
		s.targets[i] = nil
	}
	s.targets = kept
	s.reindex()
	return removed
}

// Clone returns a deep copy: new targets, sprites and descriptors with the
// same ids and values. Mutating the clone never affects s.
func (s *Sequence) Clone() *Sequence {
	sprites := make(map[*Sprite]*Sprite)
	targets := make([]*Target, len(s.targets))
	for i, t := range s.targets {
		c := &Target{ID: t.ID, IsStage: t.IsStage}
		if t.Sprite != nil {
			sp, ok := sprites[t.Sprite]
			if !ok {
				sp = &Sprite{Name: t.Sprite.Name, Group: t.Sprite.Group.Clone()}
				sprites[t.Sprite] = sp
			}
			c.Sprite = sp
		}
		targets[i] = c
	}
	return New(targets...)
}

// SharesSprite reports whether the target with the given id shares its
// sprite with another target, as clones do.
func (s *Sequence) SharesSprite(id string) bool {
	t := s.Get(id)
	if t == nil || t.Sprite == nil {
		return false
	}
	for _, o := range s.targets {
		if o != t && o.Sprite == t.Sprite {
			return true
		}
	}
	return false
}

// Members returns the positions of the targets in groupID, ordered by rank.
func (s *Sequence) Members(groupID string) []int {
	var out []int
	for i, t := range s.targets {
		if d := t.Group(); group.IsGrouped(d) && d.GroupID == groupID {
			out = append(out, i)
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return s.targets[out[a]].Group().IndexInGroup < s.targets[out[b]].Group().IndexInGroup
	})
	return out
}

// GroupMembers returns the members of groupID, ordered by rank.
func (s *Sequence) GroupMembers(groupID string) []group.Member {
	positions := s.Members(groupID)
	out := make([]group.Member, len(positions))
	for i, pos := range positions {
		out[i] = s.targets[pos].Member()
	}
	return out
}

// Run resolves ref to the positions of a run. A target id takes precedence
// over a group id: a grouped sprite stands for its whole group and an
// ungrouped sprite is a run of one. Otherwise ref names a group. A group
// whose id collides with a sprite id stays reachable through its leader.
func (s *Sequence) Run(ref string) ([]int, error) {
	if t := s.Get(ref); t != nil {
		if t.IsStage {
			return nil, fmt.Errorf("target %q: %w", ref, ErrNotASprite)
		}
		if d := t.Group(); group.IsGrouped(d) {
			return s.Members(d.GroupID), nil
		}
		pos, _ := s.PositionOf(ref)
		return []int{pos}, nil
	}
	if positions := s.Members(ref); len(positions) > 0 {
		return positions, nil
	}
	return nil, fmt.Errorf("group or target %q: %w", ref, ErrNotFound)
}

// GroupIDs returns the distinct group ids in order of first appearance.
func (s *Sequence) GroupIDs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range s.targets {
		d := t.Group()
		if !group.IsGrouped(d) || seen[d.GroupID] {
			continue
		}
		seen[d.GroupID] = true
		out = append(out, d.GroupID)
	}
	return out
}

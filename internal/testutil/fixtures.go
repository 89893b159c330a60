package testutil

import (
	"github.com/thruflo/targetorder/internal/group"
	"github.com/thruflo/targetorder/internal/sequence"
)

// StageID is the id Layers treats as the stage.
const StageID = "stage"

// SampleGroupName is the display name Group gives its groups.
const SampleGroupName = "Sample group"

// Layers returns a sequence of ungrouped sprites, with StageID as the stage.
// Sprites are named "sprite-<id>".
func Layers(ids ...string) *sequence.Sequence {
	targets := make([]*sequence.Target, len(ids))
	for i, id := range ids {
		if id == StageID {
			targets[i] = sequence.NewStage(id)
			continue
		}
		targets[i] = sequence.NewSprite(id, "sprite-"+id)
	}
	return sequence.New(targets...)
}

// Group makes ids one group: the first is the leader and the rest follow in
// rank order. It does not move anything.
func Group(seq *sequence.Sequence, ids ...string) {
	leader := group.New(ids[0], SampleGroupName)
	seq.Get(ids[0]).SetGroup(leader)
	for i, id := range ids[1:] {
		seq.Get(id).SetGroup(leader.Join(i + 1))
	}
}

// ScenarioGroups returns [stage X Y Z W V] with groups Xg = X,Y and
// Zg = Z,W,V.
func ScenarioGroups() *sequence.Sequence {
	seq := Layers(StageID, "X", "Y", "Z", "W", "V")
	Group(seq, "X", "Y")
	Group(seq, "Z", "W", "V")
	return seq
}

// TargetState is a comparable copy of one target.
type TargetState struct {
	ID      string
	IsStage bool
	Name    string
	Group   *group.Descriptor
}

// Snapshot is a comparable copy of a whole sequence.
type Snapshot []TargetState

// TakeSnapshot copies the order and descriptors of seq.
func TakeSnapshot(seq *sequence.Sequence) Snapshot {
	out := make(Snapshot, 0, seq.Len())
	for _, t := range seq.Targets() {
		st := TargetState{ID: t.ID, IsStage: t.IsStage, Group: t.Group().Clone()}
		if t.Sprite != nil {
			st.Name = t.Sprite.Name
		}
		out = append(out, st)
	}
	return out
}
